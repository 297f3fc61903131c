package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/John-Robertt/MFeed/internal/app/run"
	"github.com/John-Robertt/MFeed/internal/archive"
	"github.com/John-Robertt/MFeed/internal/config"
	"github.com/John-Robertt/MFeed/internal/domain"
	"github.com/John-Robertt/MFeed/internal/feed"
	"github.com/John-Robertt/MFeed/internal/infra/fsx"
	"github.com/John-Robertt/MFeed/internal/infra/logx"
	"github.com/John-Robertt/MFeed/internal/upload"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	switch args[0] {
	case "run":
		if code := runCmd(args[1:]); code != 0 {
			os.Exit(code)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printRunUsage()
			return 0
		}
	}

	ra, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printRunUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}
	cwdAbs, _ := filepath.Abs(cwd)

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		Path:      ra.Path,
		Zip:       ra.Zip,
		ZipSet:    ra.ZipSet,
		Upload:    ra.Upload,
		UploadSet: ra.UploadSet,
	})
	if err != nil {
		emitReport(reportForConfigError(cwdAbs, err))
		return 1
	}

	// 日志文件是跳过/失败的权威记录：打不开就不值得继续跑。
	logger, closer, err := logx.New(filepath.Join(eff.OutputDir, eff.LogName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "打开日志文件失败：%v\n", err)
		return 1
	}
	defer closer.Close()

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	f, rr, err := run.ExecuteWithObserver(context.Background(), eff, logger, obs)
	if err != nil {
		// 致命：文档尚未产出。
		logger.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		emitReport(reportForFatal(eff, err))
		return 1
	}

	feedPath := filepath.Join(eff.OutputDir, eff.FeedName)
	b, err := feed.Encode(f)
	if err != nil {
		logger.Errorf("渲染 feed 失败：%v", err)
		appendSynthetic(&rr, domain.ErrCodeIOFailed, fmt.Sprintf("渲染 feed 失败：%v", err))
	} else if werr := fsx.WriteFileAtomicReplace(eff.OutputDir, eff.FeedName, b); werr != nil {
		logger.Errorf("写入 feed 失败：%v", werr)
		appendSynthetic(&rr, domain.ErrCodeIOFailed, fmt.Sprintf("写入 feed 失败：%v", werr))
	} else {
		rr.Feed = feedPath
		logger.Infof("feed 已生成：%s", feedPath)

		if eff.Zip {
			zipPath := filepath.Join(eff.OutputDir, eff.ZipName)
			if zerr := archive.ZipFile(feedPath, zipPath); zerr != nil {
				logger.Errorf("压缩 feed 失败：%v", zerr)
				appendSynthetic(&rr, domain.ErrCodeIOFailed, fmt.Sprintf("压缩 feed 失败：%v", zerr))
			} else {
				logger.Infof("feed 已压缩：%s", zipPath)

				if eff.Upload {
					// 投递失败只影响本次上传：文档与压缩包保持原样。
					if uerr := upload.Upload(context.Background(), eff.SFTP, zipPath); uerr != nil {
						logger.Errorf("%v", uerr)
						appendSynthetic(&rr, domain.ErrCodeUploadFailed, uerr.Error())
					} else {
						logger.Infof("已上传：%s", upload.RemotePath(eff.SFTP.RemoteDir, zipPath))
					}
				}
			}
		}
	}

	rr.Finalize()
	emitReport(rr)
	if interactive {
		emitLocations(progressW, eff, rr)
	}
	if rr.Summary.Failed == 0 {
		return 0
	}
	return 1
}

type runArgs struct {
	Path string

	Zip    bool
	ZipSet bool

	Upload    bool
	UploadSet bool
}

func parseRunArgs(args []string) (runArgs, error) {
	ra := runArgs{}

	for _, a := range args {
		switch {
		case a == "--zip":
			ra.Zip = true
			ra.ZipSet = true
		case strings.HasPrefix(a, "--zip="):
			v, err := parseBool(strings.TrimPrefix(a, "--zip="), "--zip")
			if err != nil {
				return runArgs{}, err
			}
			ra.Zip = v
			ra.ZipSet = true
		case a == "--upload":
			ra.Upload = true
			ra.UploadSet = true
		case strings.HasPrefix(a, "--upload="):
			v, err := parseBool(strings.TrimPrefix(a, "--upload="), "--upload")
			if err != nil {
				return runArgs{}, err
			}
			ra.Upload = v
			ra.UploadSet = true
		case strings.HasPrefix(a, "-"):
			return runArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ra.Path != "" {
				return runArgs{}, fmt.Errorf("重复的 path：%q 与 %q", ra.Path, a)
			}
			ra.Path = a
		}
	}

	return ra, nil
}

func parseBool(v, flag string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%s 只能是 true 或 false，实际是 %q", flag, v)
	}
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  mfeed run [path] [--zip[=true|false]] [--upload[=true|false]]

命令：
  run    装配商品目录 feed（默认只生成文档）

使用 "mfeed run --help" 查看详细说明。
`)
}

func printRunUsage() {
	fmt.Fprint(os.Stdout, `用法：
  mfeed run [path] [--zip[=true|false]] [--upload[=true|false]]

参数：
  --zip       生成后打包为单条目 zip；支持 --zip=false 覆盖配置中的 zip=true
  --upload    打包后通过 SFTP 上传（隐含 --zip）；连接参数来自 mfeed.json 的 sftp 段
  -h, --help  显示帮助
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		fmt.Fprintf(os.Stdout, "完成：processed=%d skipped=%d failed=%d items=%d\n",
			rr.Summary.Processed, rr.Summary.Skipped, rr.Summary.Failed, rr.Summary.Items,
		)
		if rr.Summary.Failed > 0 || rr.Summary.Skipped > 0 {
			for _, fr := range rr.Folders {
				if fr.Status == domain.StatusProcessed {
					continue
				}
				key := fr.Folder
				if key == "" {
					// 合成条目（写盘/压缩/上传失败）没有目录名。
					key = "<run>"
				}
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", key, fr.ErrorCode, fr.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（日志/摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：processed=%d skipped=%d failed=%d items=%d\n",
		rr.Summary.Processed, rr.Summary.Skipped, rr.Summary.Failed, rr.Summary.Items,
	)
}

func appendSynthetic(rr *domain.RunReport, code, msg string) {
	rr.Folders = append(rr.Folders, domain.FolderResult{
		Folder:    "",
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	})
}

func reportForConfigError(cwdAbs string, err error) domain.RunReport {
	now := time.Now().UTC()
	rr := domain.RunReport{
		Path:       cwdAbs,
		StartedAt:  now,
		FinishedAt: now,
		Folders: []domain.FolderResult{{
			Folder:    "",
			Status:    domain.StatusFailed,
			ErrorCode: config.Code(err),
			ErrorMsg:  err.Error(),
		}},
	}
	rr.Finalize()
	return rr
}

func reportForFatal(eff config.EffectiveConfig, err error) domain.RunReport {
	now := time.Now().UTC()
	rr := domain.RunReport{
		Path:       eff.Path,
		StartedAt:  now,
		FinishedAt: now,
		Folders: []domain.FolderResult{{
			Folder:    "",
			Status:    domain.StatusFailed,
			ErrorCode: domain.ErrCodeIOFailed,
			ErrorMsg:  err.Error(),
		}},
	}
	rr.Finalize()
	return rr
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}

func emitLocations(w io.Writer, eff config.EffectiveConfig, rr domain.RunReport) {
	// 这几行用于降低“完成后不知道产物在哪”的摩擦，且不影响 stdout JSON 契约。
	if w == nil {
		return
	}
	if rr.Feed != "" {
		fmt.Fprintf(w, "feed: %s\n", rr.Feed)
	}
	if eff.Zip && rr.Feed != "" {
		fmt.Fprintf(w, "zip: %s\n", filepath.Join(eff.OutputDir, eff.ZipName))
	}
	fmt.Fprintf(w, "log: %s\n", filepath.Join(eff.OutputDir, eff.LogName))
}
