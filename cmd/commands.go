package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"dbtool/config"
	"dbtool/model"
	"dbtool/parser"
	"dbtool/xmlparser"

	"github.com/spf13/cobra"
)

// stdoutPath - значение --out, означающее стандартный вывод
const stdoutPath = "-"

var errNotEqual = errors.New("databases are not equal")

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Database schema metadata in canonical XML.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to the YAML config (default ./dbtool.yaml if present)")
	root.AddCommand(
		newImportCmd(&flags),
		newFmtCmd(),
		newRenderCmd(),
		newHashCmd(),
		newEqualCmd(),
		newExportCmd(),
		newVerifyCmd(&flags),
	)
	return root
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "import [ddl-file]",
		Short: "Build the schema document from CREATE TABLE statements.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(flags.configPath)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			src := cfg.Paths.SchemaFile
			if len(args) == 1 {
				src = args[0]
			}
			if out == "" {
				out = cfg.Paths.XMLFile
			}

			db, err := parser.ParseSQLSchema(src)
			if err != nil {
				return err
			}
			log.Printf("Parsed %s: %d tables", src, len(db.Tables))

			var data []byte
			if cfg.Output.Format == config.FormatJSON {
				data, err = model.ToJSON(db)
			} else {
				data, err = model.Marshal(db)
			}
			if err != nil {
				return err
			}
			if out == stdoutPath {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			log.Printf("Written %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default paths.xml_file)`)
	cmd.Flags().StringVar(&format, "format", "", "output format: xml or json (default output.format)")
	return cmd
}

func newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <xml-file>",
		Short: "Rewrite a schema document in canonical formatting.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orig, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			db, err := model.Unmarshal(orig)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			data, err := model.Marshal(db)
			if err != nil {
				return err
			}
			if !write {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if bytes.Equal(orig, data) {
				return nil
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			log.Printf("Formatted %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <xml-file>",
		Short: "Print the canonical string form of a schema document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := xmlparser.LoadFile(args[0])
			if err != nil {
				return err
			}
			cmd.Println(db.String())
			return nil
		},
	}
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <xml-file>...",
		Short: "Print the structural hash of schema documents.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				db, err := xmlparser.LoadFile(path)
				if err != nil {
					return err
				}
				cmd.Printf("%016x  %s\n", db.Hash(), path)
			}
			return nil
		},
	}
}

func newEqualCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equal <xml-file> <xml-file>",
		Short: "Compare two schema documents structurally.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := xmlparser.LoadFile(args[0])
			if err != nil {
				return err
			}
			b, err := xmlparser.LoadFile(args[1])
			if err != nil {
				return err
			}
			if !a.Equal(b) {
				cmd.Println("not equal")
				return errNotEqual
			}
			cmd.Println("equal")
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <xml-file>",
		Short: "Print a schema document as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := xmlparser.LoadFile(args[0])
			if err != nil {
				return err
			}
			data, err := model.ToJSON(db)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVerifyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: "Check that every schema document in a directory round-trips.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(flags.configPath)
			if err != nil {
				return err
			}
			dir := cfg.Paths.XMLDumpsDir
			if len(args) == 1 {
				dir = args[0]
			}

			docs, loadErr := xmlparser.LoadDir(dir)
			names := make([]string, 0, len(docs))
			for name := range docs {
				names = append(names, name)
			}
			sort.Strings(names)

			errs := []error{loadErr}
			for _, name := range names {
				if err := roundTrip(docs[name]); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", name, err))
					continue
				}
				cmd.Printf("ok  %016x  %s\n", docs[name].Hash(), name)
			}
			return errors.Join(errs...)
		},
	}
}

// roundTrip проверяет, что Unmarshal(Marshal(db)) равна db, а повторная сериализация побайтно совпадает
func roundTrip(db *model.Database) error {
	data, err := model.Marshal(db)
	if err != nil {
		return err
	}
	back, err := model.Unmarshal(data)
	if err != nil {
		return err
	}
	if !db.Equal(back) {
		return errors.New("decoded document differs from the original")
	}
	again, err := model.Marshal(back)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, again) {
		return errors.New("marshal output is not stable")
	}
	return nil
}
