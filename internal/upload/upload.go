// Package upload 通过 SFTP 把压缩包投递到远端目录。
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/John-Robertt/MFeed/internal/config"
)

const dialTimeout = 30 * time.Second

// Error 表示一次远程投递失败（拨号/认证/写入任一环节）。
// 投递失败只影响本次上传：已生成的 feed 文档与压缩包不受影响。
type Error struct {
	Host string
	Path string // 远端目标路径；未到写入阶段时为空
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("SFTP 上传失败（%s -> %s）：%v", e.Host, e.Path, e.Err)
	}
	return fmt.Sprintf("SFTP 上传失败（%s）：%v", e.Host, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsUploadError 判断 err 是否为投递失败。
func IsUploadError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// RemotePath 计算远端目标路径：remote_dir + 本地文件名（远端统一 POSIX 分隔符）。
func RemotePath(remoteDir, localPath string) string {
	return path.Join(remoteDir, filepath.Base(localPath))
}

// Upload 把 localPath 上传到 cfg.RemoteDir 下的同名文件。
//
// 约束：
// - 成功/失败必须可区分：任何失败都以 *Error 返回，绝不让宿主进程崩溃
// - 口令认证；远端主机公钥当前不校验
//
// TODO: 支持通过配置固定远端主机公钥（known_hosts / pinned key）。
func Upload(ctx context.Context, cfg config.SFTPConfig, localPath string) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	d := net.Dialer{Timeout: dialTimeout}
	raw, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &Error{Host: cfg.Host, Err: err}
	}

	cc := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}
	sc, chans, reqs, err := ssh.NewClientConn(raw, addr, cc)
	if err != nil {
		_ = raw.Close()
		return &Error{Host: cfg.Host, Err: err}
	}
	conn := ssh.NewClient(sc, chans, reqs)
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return &Error{Host: cfg.Host, Err: err}
	}
	defer client.Close()

	src, err := os.Open(localPath)
	if err != nil {
		return &Error{Host: cfg.Host, Err: err}
	}
	defer src.Close()

	remote := RemotePath(cfg.RemoteDir, localPath)
	dst, err := client.Create(remote)
	if err != nil {
		return &Error{Host: cfg.Host, Path: remote, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return &Error{Host: cfg.Host, Path: remote, Err: err}
	}
	if err := dst.Close(); err != nil {
		return &Error{Host: cfg.Host, Path: remote, Err: err}
	}
	return nil
}
