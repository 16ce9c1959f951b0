package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type TunnelConfig struct {
	SSHUser        string
	SSHHost        string
	SSHPort        string
	RemoteHost     string
	RemotePort     string
	LocalPort      string
	PrivateKeyPath string
	KnownHostsPath string
}

func (c TunnelConfig) validate() error {
	switch {
	case c.SSHUser == "" || c.SSHHost == "":
		return errors.New("ssh user and host are required")
	case c.RemoteHost == "" || c.RemotePort == "":
		return errors.New("remote host and port are required")
	case c.PrivateKeyPath == "":
		return errors.New("private key path is required")
	}
	return nil
}

// hostKeyCallback verifies the bastion against a known_hosts file when one
// is given.
func (c TunnelConfig) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.KnownHostsPath == "" {
		log.Warn().Msg("No known_hosts file given, the bastion host key will not be verified")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	return knownhosts.New(c.KnownHostsPath)
}

// SSHClient creates a new SSH client
func SSHClient(config TunnelConfig) (*ssh.Client, error) {
	key, err := os.ReadFile(config.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	hostKeyCallback, err := config.hostKeyCallback()
	if err != nil {
		return nil, fmt.Errorf("unable to load known hosts: %w", err)
	}

	// Define the SSH client configuration
	sshConfig := &ssh.ClientConfig{
		User: config.SSHUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         5 * time.Second,
	}

	// Connect to the SSH server
	return ssh.Dial("tcp", net.JoinHostPort(config.SSHHost, config.SSHPort), sshConfig)
}

// Dialer opens connections to the far side of the tunnel.
type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
}

// ForwardTraffic forwards traffic from local to remote host until the
// listener is closed.
func ForwardTraffic(localListener net.Listener, client Dialer, remoteAddr string) {
	for {
		localConn, err := localListener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Error().Err(err).Msg("Failed to accept local connection")
			continue
		}

		// Open a connection to the remote host
		remoteConn, err := client.Dial("tcp", remoteAddr)
		if err != nil {
			log.Error().Err(err).Str("remote", remoteAddr).Msg("Failed to connect to remote host")
			localConn.Close()
			continue
		}

		// Forward data between local and remote connections
		go func() {
			defer localConn.Close()
			defer remoteConn.Close()

			go io.Copy(remoteConn, localConn)
			io.Copy(localConn, remoteConn)
		}()
	}
}

// StartSSHTunnel initializes the SSH tunnel and forwards traffic until ctx
// is cancelled.
func StartSSHTunnel(ctx context.Context, config TunnelConfig) error {
	if err := config.validate(); err != nil {
		return err
	}

	client, err := SSHClient(config)
	if err != nil {
		return err
	}
	defer client.Close()

	localListener, err := net.Listen("tcp", net.JoinHostPort("localhost", config.LocalPort))
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		localListener.Close()
	}()

	remoteAddr := net.JoinHostPort(config.RemoteHost, config.RemotePort)
	log.Info().Str("local", localListener.Addr().String()).Str("remote", remoteAddr).Msg("SSH tunnel started")

	ForwardTraffic(localListener, client, remoteAddr)
	return nil
}

var tunnelCfg TunnelConfig

var tunnelCmd = &cobra.Command{
	Use:   "tunnel",
	Short: "Open an SSH tunnel to a database behind a bastion host",
	Long: `Forwards a local port through an SSH bastion so DATABASE_URL can point at
localhost while the database itself stays private.`,
	Run: func(cmd *cobra.Command, args []string) {
		setLogging(logLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := StartSSHTunnel(ctx, tunnelCfg); err != nil {
			log.Fatal().Err(err).Msg("SSH tunnel failed")
		}
		log.Info().Msg("SSH tunnel closed")
	},
}

func init() {
	rootCmd.AddCommand(tunnelCmd)
	tunnelCmd.Flags().StringVar(&tunnelCfg.SSHUser, "ssh-user", "", "user on the bastion host")
	tunnelCmd.Flags().StringVar(&tunnelCfg.SSHHost, "ssh-host", "", "bastion host")
	tunnelCmd.Flags().StringVar(&tunnelCfg.SSHPort, "ssh-port", "22", "bastion SSH port")
	tunnelCmd.Flags().StringVar(&tunnelCfg.RemoteHost, "remote-host", "", "database host as seen from the bastion")
	tunnelCmd.Flags().StringVar(&tunnelCfg.RemotePort, "remote-port", "5432", "database port")
	tunnelCmd.Flags().StringVar(&tunnelCfg.LocalPort, "local-port", "5433", "local port to listen on")
	tunnelCmd.Flags().StringVar(&tunnelCfg.PrivateKeyPath, "key", "", "path to the SSH private key")
	tunnelCmd.Flags().StringVar(&tunnelCfg.KnownHostsPath, "known-hosts", "", "known_hosts file to verify the bastion against")
}
