package service

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/verso-cms/verso/app/core"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	// Add flags for generic options
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "content resource service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	serve(app)

	return nil
}

// NewInstallCommand 应用数据库迁移后退出
func NewInstallCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInstall(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func RunInstall(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	return app.Store().Install()
}
