package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func tablesFromConfig(key string) []string {
	return normalizeTables(viper.GetStringSlice(key))
}

func normalizeTables(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		result = append(result, strings.ToLower(name))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// parseScore reads "correct/total", e.g. "8/10". An empty string is 0/0.
func parseScore(raw string) (int, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, nil
	}
	left, right, ok := strings.Cut(raw, "/")
	if !ok {
		return 0, 0, fmt.Errorf("无效的成绩 %q，应为 正确数/总数", raw)
	}
	correct, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("无效的正确数 %q: %w", left, err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("无效的总数 %q: %w", right, err)
	}
	return correct, total, nil
}

// tableProgress prints export progress for one table at a time, about every
// tenth of the table.
type tableProgress struct {
	out   io.Writer
	total int
	done  int
	every int
}

func newTableProgress(out io.Writer) *tableProgress {
	return &tableProgress{out: out}
}

func (p *tableProgress) StartTable(table string, total int) {
	p.total, p.done = max(total, 0), 0
	p.every = max(p.total/10, 1)
	fmt.Fprintf(p.out, "开始导出 %s (共 %d 条)\n", table, p.total)
}

func (p *tableProgress) Increment(table string, delta int) {
	if delta <= 0 {
		return
	}
	before := p.done
	p.done += delta
	if p.done/p.every != before/p.every || p.done == p.total {
		fmt.Fprintf(p.out, "导出进度 %s: %d/%d\n", table, p.done, p.total)
	}
}

func (p *tableProgress) FinishTable(table string) {
	fmt.Fprintf(p.out, "完成导出 %s: %d/%d 条\n", table, p.done, p.total)
}
