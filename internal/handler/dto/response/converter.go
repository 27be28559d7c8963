package response

import (
	"appointment-scheduler/internal/domain/civil"

	"github.com/jinzhu/copier"
)

// civil values leave the API as their text forms: dates YYYY-MM-DD, times HH:MM.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: civil.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(civil.Date).String(), nil
			},
		},
		{
			SrcType: civil.TimeOfDay(0),
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(civil.TimeOfDay).String(), nil
			},
		},
		{
			SrcType: (*civil.TimeOfDay)(nil),
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				t, _ := src.(*civil.TimeOfDay)
				if t == nil {
					return (*string)(nil), nil
				}
				s := t.String()
				return &s, nil
			},
		},
	},
}

func project[T any](from any) (*T, error) {
	var to T
	if err := copier.CopyWithOption(&to, from, copyOption); err != nil {
		return nil, err
	}
	return &to, nil
}
