package run

import (
	"time"

	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
)

// Observer 用于把“运行进度/阶段/目录结果”从核心装配流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）；
//   跳过/失败的权威记录始终是日志文件，Observer 只是展示通道
// - 目录严格串行处理，事件也按序到达；实现无需考虑并发
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（用于打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnFolderDone 在某个商品目录处理完成时调用（用于每目录一行输出）。
	OnFolderDone(idx, total int, folder string, res domain.FolderResult, dur time.Duration)
}
