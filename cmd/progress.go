/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/studytrack/internal/app"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "计算学习进度汇总",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithContainer(cmd, false, func(ctx context.Context, c *app.Container) error {
			days, err := c.Ledger.Days(ctx)
			if err != nil {
				c.Logger.WithError(err).Warn("读取使用记录失败，按空记录计算")
				days = nil
			}
			summary, err := c.Progress.ComputeProgress(ctx, days)
			if err != nil {
				return fmt.Errorf("计算进度失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), summary)
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
