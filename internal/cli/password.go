// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sitenav/internal/platform/sec"
)

const minPasswordLength = 8

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("hash-password: no password on stdin")
			}

			password := strings.TrimRight(line, "\r\n")
			if len(password) < minPasswordLength {
				return fmt.Errorf("hash-password: password must be at least %d characters", minPasswordLength)
			}

			hash, err := sec.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
