package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/John-Robertt/MFeed/internal/domain"
)

const (
	// ErrCodeNotFound 表示无参运行但 cwd 下没有 mfeed.json。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeMissingPath 表示无参运行但配置文件缺少 path 字段。
	ErrCodeMissingPath = "config_missing_path"
)

const (
	DefaultFeedName = "google_product_feed.xml"
	DefaultZipName  = "product_feed.zip"
	DefaultLogName  = "log.txt"

	DefaultImageURLPrefix = "https://yourdomain.com/images/"
	DefaultLinkBase       = "https://yourdomain.com/product/"
	DefaultCurrency       = "USD"

	DefaultChannelTitle       = "My Product Feed"
	DefaultChannelLink        = "https://yourdomain.com"
	DefaultChannelDescription = "Product feed for Google Merchant Center"

	DefaultSFTPPort = 22
)

// CLIArgs 只包含 CLI 暴露的入口（path/zip/upload），并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --upload=false 必须能覆盖 config.upload=true。
type CLIArgs struct {
	Path string

	Zip    bool
	ZipSet bool

	Upload    bool
	UploadSet bool
}

// FileConfig 对应 mfeed.json 的解析结构。
type FileConfig struct {
	Path      string `json:"path"`
	OutputDir string `json:"output_dir"`

	FeedName string `json:"feed_name"`
	ZipName  string `json:"zip_name"`
	LogName  string `json:"log_name"`

	ImageURLPrefix string `json:"image_url_prefix"`
	LinkBase       string `json:"link_base"`
	Currency       string `json:"currency"`

	Channel        *ChannelConfig `json:"channel"`
	RequiredFields []string       `json:"required_fields"`

	Zip    *bool       `json:"zip"`
	Upload *bool       `json:"upload"`
	SFTP   *SFTPConfig `json:"sftp"`
}

type ChannelConfig struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type SFTPConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Password  string `json:"password"`
	RemoteDir string `json:"remote_dir"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置。
// 进程启动时构造一次，按引用传给 Scanner 与 Builder（不允许环境级可变全局状态），
// 实现层直接消费，不再做二次默认/优先级判断。
type EffectiveConfig struct {
	Path      string
	OutputDir string

	FeedName string
	ZipName  string
	LogName  string

	// ImageURLPrefix / LinkBase 均已规范化为以 "/" 结尾。
	ImageURLPrefix string
	LinkBase       string
	Currency       string

	ChannelTitle       string
	ChannelLink        string
	ChannelDescription string

	RequiredFields []string

	Zip    bool
	Upload bool
	SFTP   SFTPConfig
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeMissingPath:
		return fmt.Sprintf("%s：配置文件 %q 缺少必填字段 path", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

var currencyRE = regexp.MustCompile(`^[A-Z]{3}$`)

// LoadEffective 按约定发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 path：尝试读取 <path>/mfeed.json（可选）
// 2) CLI 未提供 path：必须读取 <cwd>/mfeed.json（必选），且其中必须包含 path
//
// 覆盖优先级（固定）：
// - path：CLI path > config path
// - zip/upload：CLI > config > 默认 false；upload=true 隐含 zip=true
// - 其他字段：仅由 config 控制（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	if strings.TrimSpace(cli.Path) != "" {
		// CLI 给了 path：配置文件可选，位置固定在 <path>/mfeed.json。
		absPath := absCleanFrom(cwdAbs, cli.Path)
		cfgPath := filepath.Join(absPath, "mfeed.json")

		fc, _, err := readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		return merge(cwdAbs, absPath, cli, fc, cfgPath)
	}

	// CLI 没给 path：必须读取 <cwd>/mfeed.json，且其中必须包含 path。
	cfgPath := filepath.Join(cwdAbs, "mfeed.json")
	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if !exists {
		return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
	}
	if strings.TrimSpace(fc.Path) == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeMissingPath, Path: cfgPath}
	}

	absPath := absCleanFrom(cwdAbs, fc.Path)
	return merge(cwdAbs, absPath, cli, fc, cfgPath)
}

func merge(cwdAbs, absPath string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	// zip/upload：CLI > config > 默认 false。
	zip := false
	if cli.ZipSet {
		zip = cli.Zip
	} else if fc.Zip != nil {
		zip = *fc.Zip
	}
	upload := false
	if cli.UploadSet {
		upload = cli.Upload
	} else if fc.Upload != nil {
		upload = *fc.Upload
	}
	if upload {
		// 投递的是压缩包：upload 隐含 zip。
		zip = true
	}

	outputDir := cwdAbs
	if strings.TrimSpace(fc.OutputDir) != "" {
		outputDir = absCleanFrom(cwdAbs, fc.OutputDir)
	}

	feedName := stringOr(fc.FeedName, DefaultFeedName)
	zipName := stringOr(fc.ZipName, DefaultZipName)
	logName := stringOr(fc.LogName, DefaultLogName)
	for _, name := range []string{feedName, zipName, logName} {
		if name != filepath.Base(name) {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath,
				Err: fmt.Errorf("产物文件名不允许包含路径分隔符：%q", name)}
		}
	}

	prefix, err := normalizeBaseURL(stringOr(fc.ImageURLPrefix, DefaultImageURLPrefix))
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("image_url_prefix 无效：%w", err)}
	}
	linkBase, err := normalizeBaseURL(stringOr(fc.LinkBase, DefaultLinkBase))
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("link_base 无效：%w", err)}
	}

	currency := stringOr(fc.Currency, DefaultCurrency)
	if !currencyRE.MatchString(currency) {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath,
			Err: fmt.Errorf("currency 必须是 3 位大写字母代码，实际是 %q", currency)}
	}

	title := DefaultChannelTitle
	link := DefaultChannelLink
	desc := DefaultChannelDescription
	if fc.Channel != nil {
		title = stringOr(fc.Channel.Title, title)
		link = stringOr(fc.Channel.Link, link)
		desc = stringOr(fc.Channel.Description, desc)
	}

	required := cleanFields(fc.RequiredFields)

	sftp := SFTPConfig{Port: DefaultSFTPPort}
	if fc.SFTP != nil {
		sftp = *fc.SFTP
		if sftp.Port == 0 {
			sftp.Port = DefaultSFTPPort
		}
	}
	if upload {
		if err := validateSFTP(sftp); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}

	return EffectiveConfig{
		Path:      absPath,
		OutputDir: outputDir,

		FeedName: feedName,
		ZipName:  zipName,
		LogName:  logName,

		ImageURLPrefix: prefix,
		LinkBase:       linkBase,
		Currency:       currency,

		ChannelTitle:       title,
		ChannelLink:        link,
		ChannelDescription: desc,

		RequiredFields: required,

		Zip:    zip,
		Upload: upload,
		SFTP:   sftp,
	}, nil
}

// cleanFields 去空白、去空项；清空后为空则回退到内置必填集合。
func cleanFields(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return domain.DefaultRequiredFields()
	}
	return out
}

func validateSFTP(c SFTPConfig) error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("upload=true 但 sftp.host 为空")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("sftp.port 必须在 [1, 65535]，实际是 %d", c.Port)
	}
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("upload=true 但 sftp.user 为空")
	}
	if strings.TrimSpace(c.Password) == "" {
		return fmt.Errorf("upload=true 但 sftp.password 为空")
	}
	if strings.TrimSpace(c.RemoteDir) == "" {
		return fmt.Errorf("upload=true 但 sftp.remote_dir 为空")
	}
	return nil
}

// normalizeBaseURL 校验 http/https 绝对地址，并保证以 "/" 结尾
// （图片地址与商品链接都是“前缀 + 末段”的拼接，末尾斜杠是拼接契约）。
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("必须是 http/https 地址：%q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("缺少主机名：%q", raw)
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw, nil
}

func stringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
