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
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studytrack/internal/app"
	"github.com/eslsoft/studytrack/internal/entity"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "维护学科、章节、闪卡与测验结果",
}

var catalogSubjectCmd = &cobra.Command{
	Use:   "subject NAME",
	Short: "新建学科",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithContainer(cmd, true, func(ctx context.Context, c *app.Container) error {
			subject, err := c.Catalog.AddSubject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("新建学科失败: %w", err)
			}
			cmd.Printf("学科已创建: %s %s\n", subject.ID, subject.Name)
			return nil
		})
	},
}

var catalogChapterCmd = &cobra.Command{
	Use:   "chapter SUBJECT_ID NAME",
	Short: "在学科下新建章节",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("无效的学科 ID %q: %w", args[0], err)
		}
		return runWithContainer(cmd, true, func(ctx context.Context, c *app.Container) error {
			chapter, err := c.Catalog.AddChapter(ctx, subjectID, &entity.Chapter{Name: args[1]})
			if err != nil {
				return fmt.Errorf("新建章节失败: %w", err)
			}
			cmd.Printf("章节已创建: %s %s\n", chapter.ID, chapter.Name)
			return nil
		})
	},
}

var catalogFlashcardsCmd = &cobra.Command{
	Use:   "flashcards CHAPTER_ID",
	Short: "为章节添加闪卡",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapterID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("无效的章节 ID %q: %w", args[0], err)
		}
		rawCards, _ := cmd.Flags().GetStringArray("card")
		mastered, _ := cmd.Flags().GetBool("mastered")

		cards := make([]entity.Flashcard, 0, len(rawCards))
		for _, raw := range rawCards {
			question, answer, ok := strings.Cut(raw, "=")
			if !ok {
				return fmt.Errorf("无效的闪卡 %q，应为 问题=答案", raw)
			}
			cards = append(cards, entity.Flashcard{
				Question:  strings.TrimSpace(question),
				Answer:    strings.TrimSpace(answer),
				IsFlipped: mastered,
			})
		}
		return runWithContainer(cmd, true, func(ctx context.Context, c *app.Container) error {
			stored, err := c.Catalog.AddFlashcards(ctx, chapterID, cards)
			if err != nil {
				return fmt.Errorf("添加闪卡失败: %w", err)
			}
			cmd.Printf("已添加 %d 张闪卡\n", len(stored))
			return nil
		})
	},
}

var catalogResultCmd = &cobra.Command{
	Use:   "result CHAPTER_ID",
	Short: "记录章节最近一次测验结果",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapterID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("无效的章节 ID %q: %w", args[0], err)
		}
		mcq, _ := cmd.Flags().GetString("mcq")
		tf, _ := cmd.Flags().GetString("tf")
		next, _ := cmd.Flags().GetInt("next")
		incorrect, _ := cmd.Flags().GetStringSlice("incorrect")

		result := &entity.QuizResult{DaysUntilNextQuiz: next, IncorrectTopics: incorrect}
		if result.CorrectMCQs, result.TotalMCQs, err = parseScore(mcq); err != nil {
			return err
		}
		if result.CorrectTF, result.TotalTF, err = parseScore(tf); err != nil {
			return err
		}

		return runWithContainer(cmd, true, func(ctx context.Context, c *app.Container) error {
			stored, err := c.Catalog.RecordQuizResult(ctx, chapterID, result)
			if err != nil {
				return fmt.Errorf("记录测验结果失败: %w", err)
			}
			cmd.Println(stored.ResultTitle())
			cmd.Println(stored.PerformanceLine())
			cmd.Printf("选择题 %s，判断题 %s，%s\n", stored.MCQSummary(), stored.TFSummary(), stored.NextReminderLine())
			if topics := stored.TopicsToRevise(); len(topics) > 0 {
				cmd.Printf("需要复习: %s\n", strings.Join(topics, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSubjectCmd, catalogChapterCmd, catalogFlashcardsCmd, catalogResultCmd)

	catalogFlashcardsCmd.Flags().StringArray("card", nil, "闪卡，格式 问题=答案，可重复指定")
	catalogFlashcardsCmd.Flags().Bool("mastered", false, "将新闪卡标记为已掌握")

	catalogResultCmd.Flags().String("mcq", "", "选择题成绩，格式 正确数/总数")
	catalogResultCmd.Flags().String("tf", "", "判断题成绩，格式 正确数/总数")
	catalogResultCmd.Flags().Int("next", 0, "距离下次测验的天数")
	catalogResultCmd.Flags().StringSlice("incorrect", nil, "答错的主题")
}
