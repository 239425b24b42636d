package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "MODEL_MISSING"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "model", "explain"）
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	// ErrStoreNotFound 表示存储中不存在对应的 key / 记录。
	ErrStoreNotFound = &DomainError{Code: "NOT_FOUND", Message: "store: not found", Module: "store"}

	// ErrModelMissing 表示模型槽位为空：加载时缺失或加载失败。
	// 聚合器据此跳过对应信号，不把错误向上传播。
	ErrModelMissing = &DomainError{Code: "MODEL_MISSING", Message: "model: artifact missing", Module: "model"}
)

// IsStoreNotFound 检查错误是否为"记录不存在"。
func IsStoreNotFound(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == "NOT_FOUND"
	}
	return false
}

// IsModelMissing 检查错误是否为"模型缺失"。
func IsModelMissing(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == "MODEL_MISSING"
	}
	return false
}
