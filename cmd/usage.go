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
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/studytrack/internal/app"
	"github.com/eslsoft/studytrack/pkg/streak"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "管理使用天数记录",
}

var usageRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "记录今天的使用",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithContainer(cmd, false, func(ctx context.Context, c *app.Container) error {
			if err := c.Ledger.RecordToday(ctx); err != nil {
				return fmt.Errorf("记录使用失败: %w", err)
			}
			cmd.Println("已记录今天的使用")
			return nil
		})
	},
}

var usageListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出全部使用天数与连续天数",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithContainer(cmd, false, func(ctx context.Context, c *app.Container) error {
			days, err := c.Ledger.Days(ctx)
			if err != nil {
				return fmt.Errorf("读取使用记录失败: %w", err)
			}
			loc, err := c.Config.Location()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, day := range days {
				fmt.Fprintln(out, day.Format(time.DateOnly))
			}
			fmt.Fprintf(out, "共 %d 天，当前连续 %d 天，最近一段连续 %d 天\n",
				len(streak.Distinct(days)),
				streak.Current(days, time.Now().In(loc)),
				streak.TrailingRun(days),
			)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.AddCommand(usageRecordCmd)
	usageCmd.AddCommand(usageListCmd)
}
