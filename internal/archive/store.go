package archive

import (
	"context"
	"fmt"
	"strings"

	"moodlog/internal/config"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

// SaveOptions 控制导出快照如何落盘。
//
// Kind 区分导出格式（csv/pdf），同时作为对象键的首段；Extension 为文件
// 扩展名（不含前导点）；BaseName 为空时使用时间戳。
type SaveOptions struct {
	Kind      string
	Extension string
	BaseName  string
}

// Store 持久化导出产物并返回存储特定的键（例如本地存储的相对路径）。
type Store interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// NewStore 根据配置实例化归档后端。
func NewStore(cfg config.Config) (Store, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.ArchiveType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStore(cfg.ArchiveLocalDir)
	case TypeS3:
		return NewS3Store(cfg)
	case TypeOSS:
		return NewOSSStore(cfg)
	case TypeCOS:
		return NewCOSStore(cfg)
	case TypeR2:
		return NewR2Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported archive type: %s", cfg.ArchiveType)
	}
}
