package dto

import "encoding/json"

// Optional 区分"字段没传"和"字段传了（包括传 null）"
// 部分更新接口全部用它包字段，避免手拼 SET 列表
//
//	{"name": "x"}        -> Set=true,  Value="x"
//	{"name": null}       -> Set=true,  Value=零值
//	{}                   -> Set=false
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
