package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID *uint `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"required,min=1,max=50"`
}

type sample struct {
	Name    *string `json:"name" validate:"required,min=3,max=50"`
	Nick    *string `json:"nick_name" validate:"omitnil,min=3"`
	Phone   *string `json:"phone" validate:"omitnil,phone"`
	Zipcode *string `json:"zipcode" validate:"omitnil,zipcode"`
	Born    *string `json:"date_of_birth" validate:"omitnil,datetime=2006-01-02"`
	Lines   []line  `json:"products" validate:"omitempty,min=1,dive"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct_Valid(t *testing.T) {
	s := sample{
		Name:    ptr("Pastel"),
		Phone:   ptr("(11)9 1234-5678"),
		Zipcode: ptr("01310-100"),
		Born:    ptr("1990-12-31"),
		Lines:   []line{{ProductID: ptr(uint(1)), Quantity: ptr(2)}},
	}
	assert.Empty(t, Struct(s))
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name  string
		input sample
		field string
		want  string
	}{
		{
			name:  "missing required",
			input: sample{},
			field: "name",
			want:  "The name field is required.",
		},
		{
			name:  "string too short",
			input: sample{Name: ptr("ab")},
			field: "name",
			want:  "The name field must be at least 3 characters.",
		},
		{
			name:  "omitnil still validates empty value",
			input: sample{Name: ptr("abc"), Nick: ptr("")},
			field: "nick_name",
			want:  "The nick name field must be at least 3 characters.",
		},
		{
			name:  "phone format",
			input: sample{Name: ptr("abc"), Phone: ptr("11 91234-5678")},
			field: "phone",
			want:  "The phone field format is invalid. Use (XX)9 XXXX-XXXX, (XX)9XXXX-XXXX or (XX)XXXX-XXXX.",
		},
		{
			name:  "zipcode format",
			input: sample{Name: ptr("abc"), Zipcode: ptr("01310100")},
			field: "zipcode",
			want:  "The zipcode field format is invalid. Use XXXXX-XXX.",
		},
		{
			name:  "date format",
			input: sample{Name: ptr("abc"), Born: ptr("31/12/1990")},
			field: "date_of_birth",
			want:  "The date of birth field must match the format YYYY-MM-DD.",
		},
		{
			name:  "nested index path",
			input: sample{Name: ptr("abc"), Lines: []line{{ProductID: ptr(uint(1)), Quantity: ptr(51)}}},
			field: "products.0.quantity",
			want:  "The quantity field must be at most 50.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(tt.input)
			require.True(t, errs.Any())
			assert.Contains(t, errs[tt.field], tt.want)
		})
	}
}

func TestPhoneVariants(t *testing.T) {
	for _, phone := range []string{"(11)9 1234-5678", "(11)91234-5678", "(11)1234-5678"} {
		errs := Struct(sample{Name: ptr("abc"), Phone: ptr(phone)})
		assert.Empty(t, errs, phone)
	}
}

func TestErrors(t *testing.T) {
	var empty Errors
	assert.False(t, empty.Any())
	assert.NoError(t, empty.Err())

	errs := Field("email", "The email has already been taken.")
	errs.Merge(Field("name", "The name field is required."))
	errs.Add("email", "second")

	require.Error(t, errs.Err())
	assert.Equal(t, "The email has already been taken.", errs.First())
	assert.Equal(t, "The email has already been taken. (and 2 more)", errs.Error())
}
