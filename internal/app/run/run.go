// Package run 驱动一次完整的 feed 装配：发现目录 -> 解析 -> 校验 -> 映射 -> 汇总。
package run

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/MFeed/internal/catalog"
	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
	"github.com/John-Robertt/MFeed/internal/scan"
	"github.com/John-Robertt/MFeed/internal/tabular"
)

// Execute 执行一次 feed 装配，返回完成的 Feed 与 RunReport。
// 目录/记录级失败全部降级为 FolderResult，不中断 run；
// 只有产品根目录不可读才返回 error（此时不产出任何文档）。
func Execute(ctx context.Context, eff config.EffectiveConfig, logger logrus.FieldLogger) (domain.Feed, domain.RunReport, error) {
	return ExecuteWithObserver(ctx, eff, logger, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/阶段信息。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, logger logrus.FieldLogger, obs Observer) (domain.Feed, domain.RunReport, error) {
	_ = ctx // 流程无取消/超时语义：一次 run 要么完整结束，要么被顶层失败打断

	started := time.Now().UTC()
	if obs != nil {
		obs.OnStart(eff)
	}

	f := domain.Feed{
		Title:       eff.ChannelTitle,
		Link:        eff.ChannelLink,
		Description: eff.ChannelDescription,
	}
	rr := domain.RunReport{
		Path:      eff.Path,
		StartedAt: started,
		Folders:   make([]domain.FolderResult, 0, 16),
	}

	scanStarted := time.Now()
	names, err := scan.ScanFolders(eff.Path)
	if err != nil {
		// 致命：产品根目录都读不了，直接终止（不产出任何文档）。
		return domain.Feed{}, domain.RunReport{}, fmt.Errorf("读取产品根目录失败：%w", err)
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{"folders": len(names)}, time.Since(scanStarted))
	}

	for i, name := range names {
		oneStarted := time.Now()
		res := processFolder(eff, logger, name, &f)
		rr.Folders = append(rr.Folders, res)
		if obs != nil {
			obs.OnFolderDone(i+1, len(names), name, res, time.Since(oneStarted))
		}
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return f, rr, nil
}

// processFolder 处理单个商品目录，并把产出的条目追加到 f。
// 任何失败都收敛为 FolderResult（目录级隔离是硬约束，不是优化）。
func processFolder(eff config.EffectiveConfig, logger logrus.FieldLogger, name string, f *domain.Feed) domain.FolderResult {
	res := domain.FolderResult{Folder: name, Status: domain.StatusProcessed}
	flog := logger.WithField("folder", name)

	pf, err := scan.Classify(eff.Path, name)
	if err != nil {
		flog.Errorf("读取商品目录失败：%v", err)
		res.Status = domain.StatusFailed
		res.ErrorCode = domain.ErrCodeIOFailed
		res.ErrorMsg = err.Error()
		return res
	}

	for _, ignored := range pf.Ignored {
		flog.Warnf("发现多个数据文件，忽略 %q（取字典序最后一个）", ignored)
	}

	if pf.DataFile == "" || len(pf.Images) == 0 {
		flog.Warn("缺少数据文件或图片，跳过该目录")
		res.Status = domain.StatusSkipped
		res.ErrorCode = domain.ErrCodeMissingAssets
		res.ErrorMsg = "缺少数据文件或图片"
		return res
	}

	records, err := tabular.ReadRecords(pf.DataFile)
	if err != nil {
		flog.Errorf("处理失败：%v", err)
		res.Status = domain.StatusFailed
		if tabular.IsParseError(err) {
			res.ErrorCode = domain.ErrCodeParseFailed
		} else {
			res.ErrorCode = domain.ErrCodeIOFailed
		}
		res.ErrorMsg = err.Error()
		return res
	}

	urls := catalog.ImageURLs(eff.ImageURLPrefix, name, pf.Images)
	for _, rec := range records {
		if !rec.HasFields(eff.RequiredFields) {
			// 记录级失败：只跳过这条记录，同目录的其余记录照常处理。
			flog.Warn("记录缺少必填字段，跳过该记录")
			res.SkippedRecords++
			continue
		}
		f.Items = append(f.Items, catalog.BuildItem(rec, urls, eff))
		res.Items++
	}
	return res
}
