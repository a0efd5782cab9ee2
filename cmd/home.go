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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studytrack/internal/app"
	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/usecase"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "生成首页摘要",
	Long:  "指定 --user 时按新老用户规则生成首页；否则使用 --mastered/--minutes/--accuracy/--activity 直接构建摘要。",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		mastered, _ := cmd.Flags().GetInt("mastered")
		minutes, _ := cmd.Flags().GetInt("minutes")
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		rawIDs, _ := cmd.Flags().GetStringSlice("activity")

		ids := make([]uuid.UUID, 0, len(rawIDs))
		for _, raw := range rawIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("无效的活动 ID %q: %w", raw, err)
			}
			ids = append(ids, id)
		}

		return runWithContainer(cmd, true, func(ctx context.Context, c *app.Container) error {
			var (
				summary *entity.HomeSummary
				err     error
			)
			if user != "" {
				summary, err = c.Home.GenerateHome(ctx, user)
			} else {
				summary, err = c.Home.BuildHomeSummary(ctx, usecase.HomeInput{
					MasteredToday:     mastered,
					StudyMinutes:      minutes,
					Accuracy:          accuracy,
					RecentActivityIDs: ids,
				}, c.Stores.Activities)
			}
			if err != nil {
				return fmt.Errorf("生成首页失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), summary)
		})
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)

	homeCmd.Flags().String("user", "", "用户名，按新老用户规则生成首页")
	homeCmd.Flags().Int("mastered", 0, "今日掌握的闪卡数")
	homeCmd.Flags().Int("minutes", 0, "今日学习分钟数")
	homeCmd.Flags().Float64("accuracy", 0, "今日测验正确率 (0-100)")
	homeCmd.Flags().StringSlice("activity", nil, "最近活动 ID，按顺序解析，逗号分隔或重复指定")
}
