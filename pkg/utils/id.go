package utils

import "github.com/google/uuid"

// NewID 生成资源主键
func NewID() string { return uuid.NewString() }
