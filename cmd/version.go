package cmd

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`asgcheck
  Version:    {{.Version}}
  Commit:     ` + Commit + `
  Build Date: ` + BuildDate + `
`)
}
