// Klassgen emits kona.toml class declarations for the exported struct
// types of Go packages, so their values can duck-type into a Kona
// universe under the names hostvalue reports for them.
package main

import (
	"flag"
	"fmt"
	"go/types"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"

	"github.com/chazu/kona/mappings"

	_ "github.com/tliron/commonlog/simple"
)

var (
	prefix  = flag.String("prefix", "", "qualified-name prefix for generated classes (default: the Go package name)")
	outPath = flag.String("o", "", "output file (default: stdout)")
	version = flag.Bool("version", false, "print version and exit")
	verbose verbosity
)

const versionStr = "0.1.0"

var log = commonlog.GetLogger("kona.klassgen")

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) Set(string) error { *v++; return nil }
func (v *verbosity) IsBoolFlag() bool { return true }

// output is the emitted subset of a kona.toml file.
type output struct {
	Classes []mappings.ClassDecl `toml:"class"`
}

func main() {
	flag.Var(&verbose, "v", "increase log verbosity (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Klassgen - kona.toml class declarations from Go packages\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  klassgen [options] <package> [package...]\n")
		fmt.Fprintf(os.Stderr, "  klassgen -prefix shop ./internal/shop >> kona.toml\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("klassgen version %s\n", versionStr)
		os.Exit(0)
	}

	commonlog.Configure(int(verbose), nil)

	patterns := flag.Args()
	if len(patterns) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no packages given\n\n")
		flag.Usage()
		os.Exit(1)
	}

	decls, err := introspect(patterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(decls) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no exported struct types found in %v\n", patterns)
		os.Exit(1)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# generated by klassgen from %s\n\n", strings.Join(patterns, " "))
	if err := toml.NewEncoder(&buf).Encode(output{Classes: decls}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding TOML: %v\n", err)
		os.Exit(1)
	}

	if *outPath == "" {
		fmt.Print(buf.String())
		return
	}
	if err := os.WriteFile(*outPath, []byte(buf.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// introspect loads the packages and collects a class declaration per
// exported struct type.
func introspect(patterns []string) ([]mappings.ClassDecl, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %v", patterns)
	}

	var decls []mappings.ClassDecl
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package errors: %v", pkg.Errors)
		}
		if pkg.Types == nil {
			return nil, fmt.Errorf("type information not available for %s", pkg.PkgPath)
		}
		decls = append(decls, classesOf(pkg, *prefix)...)
	}
	return decls, nil
}

func classesOf(pkg *packages.Package, prefix string) []mappings.ClassDecl {
	qual := prefix
	if qual == "" {
		qual = pkg.Name
	}

	var decls []mappings.ClassDecl
	scope := pkg.Types.Scope()

	// Scope names come back sorted, which keeps the output stable.
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		tn, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if named.TypeParams().Len() > 0 {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		// Field names go out verbatim; hostvalue reports Go field names
		// as member names, so these declarations duck-type its wrappers.
		decl := mappings.ClassDecl{Name: qual + "." + tn.Name()}
		for i := 0; i < st.NumFields(); i++ {
			if f := st.Field(i); f.Exported() {
				decl.Fields = append(decl.Fields, f.Name())
			}
		}
		log.Debugf("%s: %d fields", decl.Name, len(decl.Fields))
		decls = append(decls, decl)
	}
	return decls
}
