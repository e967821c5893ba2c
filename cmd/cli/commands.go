package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wadjakorntonsri/weblinks/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/weblinks/pkg/config"
	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/core/services"
	"github.com/wadjakorntonsri/weblinks/pkg/logger"
)

// cli holds what every subcommand shares once PersistentPreRunE has run.
type cli struct {
	dbURL    string
	logLevel string

	service *services.LinkService
	repo    *sqlite.SQLiteRepository
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "weblinks",
		Short:         "Manage the weblinks store from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}
	root.PersistentFlags().StringVar(&c.dbURL, "db", "", "database URL (defaults to DATABASE_URL)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.discoverCmd(),
		c.valuesCmd(),
		c.exportCmd(),
		c.importCmd(),
	)
	return root
}

func (c *cli) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.dbURL != "" {
		cfg.DatabaseURL = c.dbURL
	}

	c.log, err = logger.New(logger.Config{Level: c.logLevel, Encoding: "console"})
	if err != nil {
		return err
	}

	c.repo, err = sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	c.service = services.NewLinkService(c.repo, c.log)
	return nil
}

func (c *cli) close() error {
	if c.log != nil {
		logger.Sync(c.log)
	}
	if c.repo == nil {
		return nil
	}
	return c.repo.Close()
}

func (c *cli) listCmd() *cobra.Command {
	var author, tag, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List links, optionally filtered by author or tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, match := "", ""
			switch {
			case cmd.Flags().Changed("author"):
				index, match = domain.IndexAuthor, author
			case cmd.Flags().Changed("tag"):
				index, match = domain.IndexTags, tag
			}

			links, err := c.service.Query(cmd.Context(), index, match)
			if err != nil {
				return err
			}
			return writeLinks(cmd.OutOrStdout(), links, output)
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "only links by this author")
	cmd.Flags().StringVar(&tag, "tag", "", "only links carrying this tag")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "table, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("author", "tag")
	return cmd
}

func linkFlags(cmd *cobra.Command, link *domain.Link, tags *string) {
	cmd.Flags().StringVar(&link.Title, "title", "", "title (required)")
	cmd.Flags().StringVar(&link.URL, "url", "", "address")
	cmd.Flags().StringVar(&link.Author, "author", "", "author")
	cmd.Flags().StringVar(tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVar(&link.Comments, "comments", "", "comments")
}

func (c *cli) addCmd() *cobra.Command {
	var link domain.Link
	var tags string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			link.Tags = domain.ParseTags(tags)
			added, err := c.service.Add(cmd.Context(), link)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", added.ID, added.Title)
			return nil
		},
	}
	linkFlags(cmd, &link, &tags)
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var link domain.Link
	var tags string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace every field of a link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			link.Tags = domain.ParseTags(tags)
			saved, err := c.service.Replace(cmd.Context(), link)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved #%d %s\n", saved.ID, saved.Title)
			return nil
		},
	}
	cmd.Flags().Int64Var(&link.ID, "id", 0, "link id")
	_ = cmd.MarkFlagRequired("id")
	linkFlags(cmd, &link, &tags)
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.service.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "link id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (c *cli) discoverCmd() *cobra.Command {
	var count int
	var output string
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Show a random selection of links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := c.service.Discover(cmd.Context(), count)
			if err != nil {
				return err
			}
			return writeLinks(cmd.OutOrStdout(), links, output)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", services.DefaultDiscoverCount, "how many links")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "table, json or yaml")
	return cmd
}

func (c *cli) valuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "values <author|tags|id>",
		Short:     "List the distinct keys of an index",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{domain.IndexAuthor, domain.IndexTags, "id"},
		RunE: func(cmd *cobra.Command, args []string) error {
			index := args[0]
			if index == "id" {
				index = ""
			}
			values, err := c.service.DistinctValues(cmd.Context(), index)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every link as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := c.service.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			if out == "" {
				return encode(cmd.OutOrStdout(), links, format)
			}
			return writeFile(out, links, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add every link from a JSON or YAML export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := readLinks(file)
			if err != nil {
				return err
			}
			n, err := c.service.Import(cmd.Context(), links)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d links\n", n, len(links))
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON or YAML file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeFile(path string, links []domain.Link, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return encode(f, links, format)
}

func readLinks(path string) ([]domain.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var links []domain.Link
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &links)
	default:
		err = json.Unmarshal(data, &links)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return links, nil
}

func encode(w io.Writer, links []domain.Link, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(links)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(links); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New("unknown format " + format)
	}
}

func writeLinks(w io.Writer, links []domain.Link, output string) error {
	if output != "table" {
		return encode(w, links, output)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tTAGS\tURL")
	for _, l := range links {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.Title, l.Author, domain.JoinTags(l.Tags), l.URL)
	}
	return tw.Flush()
}
