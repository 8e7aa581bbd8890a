// Package main generates feature module skeletons.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/forgestack/feature_layer/internal/gen"
)

func main() {
	name := flag.String("name", "", "Singular, lowercase feature name, e.g. comment")
	dir := flag.String("dir", "internal/app/features", "Directory the module is generated under")
	modulePath := flag.String("module", "github.com/forgestack/feature_layer", "Go module path used in generated imports")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: featuregen -name <feature> [-dir <dir>] [-module <path>]")
		os.Exit(2)
	}

	m := gen.Module{Name: *name, ModulePath: *modulePath}
	if err := gen.Write(m, *dir); err != nil {
		fmt.Fprintf(os.Stderr, "featuregen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("generated feature module %q under %s/%s\n", *name, *dir, *name)
}
