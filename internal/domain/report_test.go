package domain

import (
	"testing"
	"time"
)

func TestFinalize_SummaryAndOrder(t *testing.T) {
	rr := RunReport{
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Folders: []FolderResult{
			{Folder: "", Status: StatusFailed, ErrorCode: ErrCodeUploadFailed},
			{Folder: "b", Status: StatusProcessed, Items: 2, SkippedRecords: 1},
			{Folder: "a", Status: StatusSkipped, ErrorCode: ErrCodeMissingAssets},
			{Folder: "c", Status: StatusFailed, ErrorCode: ErrCodeParseFailed},
		},
	}
	rr.Finalize()

	if rr.Summary.Processed != 1 || rr.Summary.Skipped != 1 || rr.Summary.Failed != 2 {
		t.Fatalf("summary 不一致：%+v", rr.Summary)
	}
	if rr.Summary.Items != 2 || rr.Summary.SkippedRecords != 1 {
		t.Fatalf("items/skipped_records 不一致：%+v", rr.Summary)
	}

	// 目录名字典序；合成条目（folder==""）排最后。
	order := []string{"a", "b", "c", ""}
	for i, want := range order {
		if rr.Folders[i].Folder != want {
			t.Fatalf("第 %d 项期望 folder=%q，实际=%q", i, want, rr.Folders[i].Folder)
		}
	}

	if loc := rr.StartedAt.Location(); loc != time.UTC {
		t.Fatalf("StartedAt 应为 UTC，实际 %v", loc)
	}
}
