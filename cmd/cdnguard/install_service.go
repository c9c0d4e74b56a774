package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

const unitPath = "/etc/systemd/system/cdnguard.service"

const unitTemplate = `[Unit]
Description=cdnguard CDN failover watchdog
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart=%s monitor
Restart=on-failure
RestartSec=10
EnvironmentFile=-/etc/cdnguard/cdnguard.env

[Install]
WantedBy=multi-user.target
`

var installServiceCmd = &cobra.Command{
	Use:   "install-service",
	Short: "Write a systemd unit that runs the monitor loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat("/run/systemd/system"); err != nil {
			return fmt.Errorf("%w: systemd is not running on this host", domain.ErrDependencyMissing)
		}
		if _, err := exec.LookPath("systemctl"); err != nil {
			return fmt.Errorf("%w: systemctl not found in PATH", domain.ErrDependencyMissing)
		}
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		if err := writeUnitFile(unitPath, execPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", unitPath)
		fmt.Fprintln(cmd.OutOrStdout(), "enable it with:")
		fmt.Fprintln(cmd.OutOrStdout(), "  systemctl daemon-reload")
		fmt.Fprintln(cmd.OutOrStdout(), "  systemctl enable --now cdnguard")
		return nil
	},
}

func writeUnitFile(path, execPath string) error {
	unit := fmt.Sprintf(unitTemplate, execPath)
	if err := os.WriteFile(path, []byte(unit), 0644); err != nil {
		return fmt.Errorf("writing unit file %s: %w", path, err)
	}
	return nil
}
