package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/spf13/cobra"
)

type generateKeypairCmdOptions struct {
	Path string
}

func NewGenerateKeypairCommand() *cobra.Command {
	opts := &generateKeypairCmdOptions{}

	cmd := &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate a new Ed25519 wallet keypair for signing transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateKeypairHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Path, "path", "/data/keys", `Path to save to key pair file`)

	return cmd
}

func generateKeypairHandler(opts *generateKeypairCmdOptions, _ *cobra.Command, _ []string) error {
	fmt.Printf("Generating key pair\n")
	keypair, err := sui.GenerateKeypair()
	if err != nil {
		return errors.Wrap(errs.SomethingWentWrong, "generate keypair")
	}
	defer keypair.Zero()

	secretKey, err := keypair.SecretKey()
	if err != nil {
		return errors.Wrap(err, "encode secret key")
	}
	address := keypair.Address().String()
	fmt.Printf("Address: %s\n", address)

	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return errors.Wrap(errs.SomethingWentWrong, "create directory")
	}

	privateKeyPath := path.Join(opts.Path, "suiprivkey.key")
	if _, err := os.Stat(privateKeyPath); err == nil {
		fmt.Printf("Existing private key found at %s\n[WARNING] THE EXISTING PRIVATE KEY WILL BE LOST\nType [replace] to replace existing private key: ", privateKeyPath)
		var ans string
		_, _ = fmt.Scanln(&ans)
		if ans != "replace" {
			fmt.Printf("Keypair generation aborted\n")
			return nil
		}
	}

	if err := os.WriteFile(privateKeyPath, []byte(secretKey), 0o600); err != nil {
		return errors.Wrap(err, "write private key file")
	}
	fmt.Printf("Private key saved at %s\n", privateKeyPath)

	addressPath := path.Join(opts.Path, "address")
	if err := os.WriteFile(addressPath, []byte(address), 0o644); err != nil {
		return errors.Wrap(errs.SomethingWentWrong, "write address file")
	}
	fmt.Printf("Address saved at %s\n", addressPath)
	return nil
}
