package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/John-Robertt/MFeed/internal/app/run"
	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是一个“简洁版”的交互终端进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 目录串行处理且只碰本地磁盘，不需要 keepalive/ticker 这类长等待手段
type progressUI struct {
	w io.Writer

	startedAt time.Time
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	mode := "feed"
	if eff.Zip {
		mode = "feed+zip"
	}
	if eff.Upload {
		mode = "feed+zip+upload"
	}

	fmt.Fprintf(p.w, "[%s] MFeed run (%s)\n", now.Format("15:04:05"), mode)
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  path: %s\n", eff.Path)
	fmt.Fprintf(p.w, "  output: %s\n", eff.OutputDir)
	fmt.Fprintf(p.w, "  currency: %s\n", eff.Currency)
	fmt.Fprintf(p.w, "  image_url_prefix: %s\n", eff.ImageURLPrefix)
	fmt.Fprintf(p.w, "  required_fields: %s\n", strings.Join(eff.RequiredFields, ","))
	if eff.Upload {
		fmt.Fprintf(p.w, "  sftp: %s:%d%s\n", eff.SFTP.Host, eff.SFTP.Port, eff.SFTP.RemoteDir)
	}
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	fmt.Fprintf(p.w, "[%s] %s 完成%s（%s）\n",
		time.Now().Format("15:04:05"), name, formatFields(fields), formatDur(dur))
}

func (p *progressUI) OnFolderDone(idx, total int, folder string, res domain.FolderResult, dur time.Duration) {
	switch res.Status {
	case domain.StatusProcessed:
		extra := ""
		if res.SkippedRecords > 0 {
			extra = fmt.Sprintf(" skipped_records=%d", res.SkippedRecords)
		}
		fmt.Fprintf(p.w, "[%d/%d] %s ok items=%d%s（%s）\n",
			idx, total, folder, res.Items, extra, formatDur(dur))
	default:
		fmt.Fprintf(p.w, "[%d/%d] %s %s %s: %s\n",
			idx, total, folder, res.Status, res.ErrorCode, res.ErrorMsg)
	}
}

// formatFields 把阶段统计按键名排序后拼成 " k=v" 串（输出稳定，便于肉眼比对）。
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("：")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	return b.String()
}

func formatDur(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
