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
	"github.com/spf13/viper"

	"github.com/eslsoft/studytrack/internal/app"
	"github.com/eslsoft/studytrack/internal/repository"
)

const (
	activitiesFilterKey  = "activities.filter"
	activitiesOrderByKey = "activities.order_by"
	activitiesLimitKey   = "activities.limit"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "列出最近活动",
	Long:  `按 CEL 表达式过滤活动，例如 --filter 'subject == "Math" && date >= timestamp("2024-01-01T00:00:00Z")'。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := &repository.ListActivityQuery{
			Filter:  viper.GetString(activitiesFilterKey),
			OrderBy: viper.GetString(activitiesOrderByKey),
			Limit:   viper.GetInt(activitiesLimitKey),
		}
		return runWithContainer(cmd, false, func(ctx context.Context, c *app.Container) error {
			items, err := c.Activities.ListActivities(ctx, query)
			if err != nil {
				return fmt.Errorf("查询活动失败: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				fmt.Fprintf(out, "%s  %s / %s  %s\n", item.ID, item.SubjectName, item.ChapterName, item.FormattedDate())
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(activitiesCmd)

	activitiesCmd.Flags().String("filter", "", "CEL 过滤表达式，可用变量: subject, chapter, date")
	activitiesCmd.Flags().String("order-by", "", "排序，例如 \"date desc, chapter asc\"")
	activitiesCmd.Flags().Int("limit", 0, "最多返回条数 (0 表示不限制)")

	bindFlagToViper(activitiesFilterKey, activitiesCmd.Flags().Lookup("filter"))
	bindFlagToViper(activitiesOrderByKey, activitiesCmd.Flags().Lookup("order-by"))
	bindFlagToViper(activitiesLimitKey, activitiesCmd.Flags().Lookup("limit"))
}
