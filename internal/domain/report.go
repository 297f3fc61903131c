package domain

import (
	"sort"
	"time"
)

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

const (
	ErrCodeMissingAssets     = "missing_assets"
	ErrCodeParseFailed       = "parse_failed"
	ErrCodeIOFailed          = "io_failed"
	ErrCodeUploadFailed      = "upload_failed"
	ErrCodeConfigNotFound    = "config_not_found"
	ErrCodeConfigInvalid     = "config_invalid"
	ErrCodeConfigMissingPath = "config_missing_path"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
type RunReport struct {
	Path string `json:"path"`
	Feed string `json:"feed"` // 产物路径；文档落盘前为空

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary  `json:"summary"`
	Folders []FolderResult `json:"folders"`
}

type ReportSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	Items          int `json:"items"`
	SkippedRecords int `json:"skipped_records"`
}

// FolderResult 是单个商品目录的处理结果。
// 目录级失败全部收敛到这里：单个目录失败不影响其余目录，也不影响最终文档。
type FolderResult struct {
	Folder string `json:"folder"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	Items          int `json:"items"`
	SkippedRecords int `json:"skipped_records"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) folders 稳定排序：按目录名字典序；folder=="" 的合成条目排在最后
// 3) summary 由 folders 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Folders, func(i, j int) bool {
		a := r.Folders[i].Folder
		b := r.Folders[j].Folder
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	var s ReportSummary
	for _, fr := range r.Folders {
		switch fr.Status {
		case StatusProcessed:
			s.Processed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
		s.Items += fr.Items
		s.SkippedRecords += fr.SkippedRecords
	}
	r.Summary = s
}
