// Command jsfn lists the native functions of a package as entries for the
// install tables of built-in objects. A function qualifies if it is
// assignable to the package's NativeFunc type and its name matches -match.
//
// For example, to list the String.prototype methods:
//
//	jsfn -match '^String' -ignore 'Ctor$'
package main

import (
	"flag"
	"fmt"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore, pkgPath string
	var length int
	flag.StringVar(&match, "match", ".", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&pkgPath, "pkg", "github.com/zephyrtronium/jsval/internal", "import path of the package defining NativeFunc")
	flag.IntVar(&length, "length", 0, "length to write for each function")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	cfg := packages.Config{Mode: packages.NeedTypes | packages.NeedImports}
	pkgs, err := packages.Load(&cfg, append([]string{pkgPath}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}
	fn := nativeFunc(pkgs[0])
	var names []string
	// With no extra packages, search the defining package itself.
	search := pkgs[1:]
	if len(search) == 0 {
		search = pkgs
	}
	for _, pkg := range search {
		names = append(names, natives(pkg.Types.Scope(), fn, mre, ire)...)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("\t\t%q: {%d, %s},\n", methodName(name, mre), length, name)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// nativeFunc finds the underlying type of NativeFunc.
func nativeFunc(pkg *packages.Package) types.Type {
	r := pkg.Types.Scope().Lookup("NativeFunc")
	if r == nil {
		fail(pkg.Name, "has no definition of NativeFunc")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name, "has incorrect definition of NativeFunc:", r)
	}
	return t.Type().Underlying()
}

// natives lists the functions in scope assignable to fn.
func natives(scope *types.Scope, fn types.Type, mre, ire *regexp.Regexp) []string {
	var r []string
	for _, name := range scope.Names() {
		if !mre.MatchString(name) || ire.MatchString(name) {
			continue
		}
		obj, ok := scope.Lookup(name).(*types.Func)
		if ok && types.AssignableTo(obj.Type(), fn) {
			r = append(r, name)
		}
	}
	return r
}

// methodName strips the matched prefix from a function name and lowercases
// the first letter, so StringPadStart matched by ^String becomes padStart.
func methodName(name string, mre *regexp.Regexp) string {
	if mre.String() != "." {
		if k := mre.FindStringIndex(name); k != nil && k[1] < len(name) {
			name = name[k[1]:]
		}
	}
	return strings.ToLower(name[:1]) + name[1:]
}
