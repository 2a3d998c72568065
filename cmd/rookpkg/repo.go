package main

import (
	"github.com/rookeryos/rookpkg/internal/config"
	"github.com/rookeryos/rookpkg/internal/log"
	"github.com/rookeryos/rookpkg/internal/reposign"
	"github.com/rookeryos/rookpkg/internal/repository"
	"github.com/spf13/cobra"
)

var (
	repoName            string
	repoDescription     string
	repoSigningKeyPath  string
	repoMasterKeysDir   string
	repoPackagerKeysDir string
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Initialize and maintain a signed package repository",
}

var repoInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new, empty signed repository",
	Long: `Init creates repo.toml, an empty packages.json and its detached
signature, and an empty packages/ directory at path. It refuses to run
against a path that already has a repo.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepoInit,
}

var repoRefreshCmd = &cobra.Command{
	Use:   "refresh <path>",
	Short: "Rebuild a repository's index from the archives on disk",
	Long: `Refresh scans path/packages/*.rookpkg in lexical order, rebuilds
packages.json from scratch, attaches groups.toml and deltas.json when
present, and re-signs the resulting index. Invalid archive signatures are
reported but do not exclude a package from the index.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepoRefresh,
}

var repoSignCmd = &cobra.Command{
	Use:   "sign <path>",
	Short: "Re-sign a repository's existing index",
	Long:  `Sign produces a fresh detached signature over path/packages.json without modifying its contents.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoSign,
}

func init() {
	repoInitCmd.Flags().StringVar(&repoName, "name", "", "Repository name")
	repoInitCmd.Flags().StringVar(&repoDescription, "description", "", "Repository description")
	repoInitCmd.Flags().StringVar(&repoSigningKeyPath, "signing-key", "", "Path to an armored private signing key")
	_ = repoInitCmd.MarkFlagRequired("name")
	_ = repoInitCmd.MarkFlagRequired("description")
	_ = repoInitCmd.MarkFlagRequired("signing-key")

	repoRefreshCmd.Flags().StringVar(&repoSigningKeyPath, "signing-key", "", "Path to an armored private signing key")
	repoRefreshCmd.Flags().StringVar(&repoMasterKeysDir, "master-keys", "", "Directory of trusted master public keys (default: $ROOKPKG_HOME/keys/master)")
	repoRefreshCmd.Flags().StringVar(&repoPackagerKeysDir, "packager-keys", "", "Directory of trusted packager public keys (default: $ROOKPKG_HOME/keys/packagers)")
	_ = repoRefreshCmd.MarkFlagRequired("signing-key")

	repoSignCmd.Flags().StringVar(&repoSigningKeyPath, "signing-key", "", "Path to an armored private signing key")
	_ = repoSignCmd.MarkFlagRequired("signing-key")

	repoCmd.AddCommand(repoInitCmd)
	repoCmd.AddCommand(repoRefreshCmd)
	repoCmd.AddCommand(repoSignCmd)
}

func runRepoInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	signer, err := reposign.NewSignerFromFile(repoSigningKeyPath)
	if err != nil {
		return err
	}

	printProgress("initializing repository %q at %s", repoName, path)
	if err := repository.Init(path, repoName, repoDescription, signer); err != nil {
		return err
	}
	printSuccess("created repo.toml, packages.json, packages.json.sig and an empty packages/ directory")
	return nil
}

func runRepoRefresh(cmd *cobra.Command, args []string) error {
	path := args[0]

	signer, err := reposign.NewSignerFromFile(repoSigningKeyPath)
	if err != nil {
		return err
	}

	resolver, err := buildResolver()
	if err != nil {
		return err
	}

	printProgress("refreshing repository at %s", path)
	stats, err := repository.Refresh(path, resolver, signer, log.Default())
	if err != nil {
		return err
	}

	printSuccess("scanned %d archives (%d signed, %d unsigned, %d invalid)",
		stats.Scanned, stats.Signed, stats.Unsigned, stats.Invalid)
	for _, w := range stats.GroupWarnings {
		printWarning("%s", w)
	}
	for _, l := range stats.DeltaUpgrades {
		printProgress("%s", l)
	}
	return nil
}

func runRepoSign(cmd *cobra.Command, args []string) error {
	path := args[0]

	signer, err := reposign.NewSignerFromFile(repoSigningKeyPath)
	if err != nil {
		return err
	}

	printProgress("signing repository index at %s", path)
	if err := repository.Sign(path, signer); err != nil {
		return err
	}
	printSuccess("wrote a fresh packages.json.sig (fingerprint %s)", signer.Fingerprint())
	return nil
}

// buildResolver builds a reposign.Resolver from the --master-keys and
// --packager-keys flags, falling back to the default config's key
// directories when unset.
func buildResolver() (*reposign.Resolver, error) {
	if repoMasterKeysDir != "" || repoPackagerKeysDir != "" {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return nil, err
		}
		master := repoMasterKeysDir
		if master == "" {
			master = cfg.MasterKeysDir
		}
		packager := repoPackagerKeysDir
		if packager == "" {
			packager = cfg.PackagerKeysDir
		}
		return &reposign.Resolver{MasterKeysDir: master, PackagerKeysDir: packager}, nil
	}

	cfg, err := config.DefaultConfig()
	if err != nil {
		return nil, err
	}
	return reposign.NewResolverFromConfig(cfg), nil
}
