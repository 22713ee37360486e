package domain

// Result 数据层统一返回信封：
//   - Success(v)：成功且有值
//   - Absent()：成功但无值（即 not found，不同于失败）
//   - Failure(err)：意外失败（DB 不可用等）
//
// 仓储层从不向调用方返回裸 error 或 panic，一律包在 Result 中。
type Result[T any] struct {
	value   T
	present bool
	err     error
}

func Success[T any](v T) Result[T] { return Result[T]{value: v, present: true} }

func Absent[T any]() Result[T] { return Result[T]{} }

func Failure[T any](err error) Result[T] { return Result[T]{err: err} }

// OK 没有发生失败（值可能缺失）
func (r Result[T]) OK() bool { return r.err == nil }

func (r Result[T]) Err() error { return r.err }

// Get 返回值以及是否存在；失败时恒为 false
func (r Result[T]) Get() (T, bool) { return r.value, r.err == nil && r.present }

// Found 成功且有值
func (r Result[T]) Found() bool { return r.err == nil && r.present }

// Map 在成功且有值时转换值，其余状态原样传递
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	switch {
	case r.err != nil:
		return Failure[U](r.err)
	case !r.present:
		return Absent[U]()
	default:
		return Success(f(r.value))
	}
}

// Page 列表结果
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
