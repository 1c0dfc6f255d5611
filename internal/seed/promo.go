package seed

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/snapmen/storefront/internal/domain/coupon"
)

// EncodePromoCoupons writes a promo-code snapshot: a flat JSON array of
// coupons as emitted by cmd/promo-ingest.
func EncodePromoCoupons(w io.Writer, coupons []coupon.Coupon) error {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, c := range coupons {
			e.Obj(func(e *jx.Encoder) {
				e.Field("code", func(e *jx.Encoder) { e.Str(c.Code) })
				e.Field("discountType", func(e *jx.Encoder) { e.Str(string(c.Kind)) })
				e.Field("value", func(e *jx.Encoder) { e.Int64(c.Value) })
				e.Field("minOrder", func(e *jx.Encoder) { e.Int64(c.MinOrder) })
				e.Field("isActive", func(e *jx.Encoder) { e.Bool(c.Active) })
				e.Field("description", func(e *jx.Encoder) { e.Str(c.Description) })
			})
		}
	})

	if _, err := w.Write(e.Bytes()); err != nil {
		return errors.Wrap(err, "write promo snapshot")
	}
	return nil
}

// DecodePromoCoupons streams a promo-code snapshot back into coupons.
// Snapshots can carry hundreds of thousands of codes, hence jx over a
// one-shot unmarshal.
func DecodePromoCoupons(r io.Reader) ([]coupon.Coupon, error) {
	d := jx.Decode(r, 64*1024)

	var out []coupon.Coupon
	if err := d.Arr(func(d *jx.Decoder) error {
		var c coupon.Coupon
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "code":
				c.Code, err = d.Str()
			case "discountType":
				var kind string
				kind, err = d.Str()
				c.Kind = coupon.Kind(kind)
			case "value":
				c.Value, err = d.Int64()
			case "minOrder":
				c.MinOrder, err = d.Int64()
			case "isActive":
				c.Active, err = d.Bool()
			case "description":
				c.Description, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "parse promo snapshot")
	}
	return out, nil
}
