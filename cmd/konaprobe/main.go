// Konaprobe decodes a captured foreign value and reports how it coerces
// into a Kona type universe.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/chazu/kona/foreign/wirevalue"
	"github.com/chazu/kona/interop"
	"github.com/chazu/kona/mappings"
	"github.com/chazu/kona/meta"

	_ "github.com/tliron/commonlog/simple"
)

var (
	mappingsDir = flag.String("m", "", "directory containing kona.toml (default: walk up from the working directory)")
	typeName    = flag.String("t", "kona.lang.Object", "qualified name of the coercion target type")
	inPath      = flag.String("in", "", "CBOR snapshot file to decode (default: stdin)")
	version     = flag.Bool("version", false, "print version and exit")
	verbose     verbosity
)

const versionStr = "0.1.0"

var log = commonlog.GetLogger("kona.probe")

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) Set(string) error { *v++; return nil }
func (v *verbosity) IsBoolFlag() bool { return true }

func main() {
	flag.Var(&verbose, "v", "increase log verbosity (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Konaprobe - foreign value coercion probe\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  konaprobe [options] < snapshot.cbor\n")
		fmt.Fprintf(os.Stderr, "  konaprobe -m ./conf -t shop.Order -in order.cbor\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("konaprobe version %s\n", versionStr)
		os.Exit(0)
	}

	commonlog.Configure(int(verbose), nil)

	engine, err := buildEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	target := engine.Meta().Lookup(*typeName)
	if target == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown type %q\n", *typeName)
		os.Exit(1)
	}

	data, err := readInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	if len(data) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no input provided\n")
		fmt.Fprintf(os.Stderr, "Usage: konaprobe < snapshot.cbor\n")
		os.Exit(1)
	}

	snap, err := wirevalue.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("decoded snapshot: caps=%#x", snap.Caps)

	obj, err := engine.Coerce(snap.Value(), target)
	if err != nil {
		var unsupported *interop.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			fmt.Printf("does not coerce to %s: %v\n", target.Name, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report(engine, obj)
}

func buildEngine() (*interop.Engine, error) {
	m := meta.NewMeta()

	var cfg *mappings.Config
	var err error
	if *mappingsDir != "" {
		cfg, err = mappings.Load(*mappingsDir)
	} else {
		cfg, err = mappings.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		log.Notice("no kona.toml found, using the built-in type universe")
		return interop.New(m), nil
	}

	reg, err := cfg.Resolve(m)
	if err != nil {
		return nil, err
	}

	// The probe has no converter code to bind; identity converters keep
	// declared mappings probeable.
	for _, cm := range cfg.Interop.Converters {
		log.Warningf("converter %q has no bound function, probing with identity", cm.Foreign)
		if err := reg.BindConverter(cm.Foreign, identity); err != nil {
			return nil, err
		}
	}
	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return interop.New(m, interop.WithMappings(reg)), nil
}

var identity = interop.TypeConverterFunc(func(handle *meta.Object) (*meta.Object, error) {
	return handle, nil
})

func readInput() ([]byte, error) {
	if *inPath == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(*inPath)
}

// report prints the coerced object, then probes each declared field of
// its class through the engine's generic path.
func report(engine *interop.Engine, obj *meta.Object) {
	fmt.Printf("coerced: %s\n", obj)
	if obj.IsNull() {
		return
	}

	names := obj.Class().AllFieldNames()
	if len(names) == 0 {
		return
	}

	if fv := obj.Foreign(); fv != nil && fv.HasMembers() {
		root := engine.Meta().Object
		for _, name := range names {
			member, err := fv.ReadMember(name)
			if err != nil {
				fmt.Printf("  %s: <%v>\n", name, err)
				continue
			}
			mo, err := engine.Coerce(member, root)
			if err != nil {
				fmt.Printf("  %s: does not coerce (%v)\n", name, err)
				continue
			}
			fmt.Printf("  %s = %s\n", name, mo)
		}
		return
	}

	for _, name := range names {
		fmt.Printf("  %s = %s\n", name, obj.FieldValue(name))
	}
}
