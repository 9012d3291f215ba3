// Command geoc is the compiler's command-line shell: a thin collaborator
// around the compile package that reads a source file, runs the pipeline
// and reports the result (§6.1).
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/golangee/geo/assemble"
	"github.com/golangee/geo/compile"
	"github.com/golangee/geo/internal/manifest"
	"github.com/golangee/geo/lexer"
)

// version is the compiler's own semantic version, validated and printed by
// the version subcommand.
const version = "v0.1.0"

var log = logrus.New()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "geoc <source_file>",
		Short: "lex, parse and record a source file; print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	root.AddCommand(newVersionCommand())
	root.AddCommand(newBuildCommand())
	return root
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	log.WithField("file", filename).Debug("compiling")

	src, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "reading %s", filename)
	}

	result, err := compile.Compile(src)
	if err != nil {
		return explainCompileFailure(err, filename, src)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d class(es) recorded\n", result.Types.Len())
	return nil
}

// explainCompileFailure logs a compile error, pointing at the offending
// line:col via lexer.Error.Explain when the failure bottoms out at a
// lexical error, rather than only logging the bare wrapped error.
func explainCompileFailure(err error, filename string, src []byte) error {
	if aerr, ok := errors.Cause(err).(*assemble.Error); ok {
		log.WithField("kind", aerr.Kind).Error("compilation failed")
		var lerr *lexer.Error
		if stderrors.As(aerr.Cause, &lerr) {
			log.Error(lerr.Explain(src))
		}
		return errors.Wrapf(aerr, "compiling %s", filename)
	}
	log.WithError(err).Error("compilation failed")
	return errors.Wrapf(err, "compiling %s", filename)
}

// newBuildCommand compiles every source file named by a build manifest, in
// the order the manifest lists them, reporting the first failure.
func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <manifest_file>",
		Short: "compile every source file named by a build manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Parse(args[0])
			if err != nil {
				return errors.Wrapf(err, "parsing manifest %s", args[0])
			}
			log.WithField("module", m.Name).WithField("sources", len(m.Sources)).Debug("building")
			total := 0
			for _, filename := range m.Sources {
				src, err := os.ReadFile(filename)
				if err != nil {
					return errors.Wrapf(err, "reading %s", filename)
				}
				result, err := compile.Compile(src)
				if err != nil {
					return explainCompileFailure(err, filename, src)
				}
				total += result.Types.Len()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "module %s: %d source file(s), %d class(es) recorded\n", m.Name, len(m.Sources), total)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the compiler's own semantic version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !semver.IsValid(version) {
				return errors.Errorf("geoc built with an invalid version string %q", version)
			}
			fmt.Fprintln(cmd.OutOrStdout(), semver.Canonical(version))
			return nil
		},
	}
}
