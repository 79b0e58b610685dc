package repository

import "errors"

// 存在しない（または他人のもので見せない）
var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")
