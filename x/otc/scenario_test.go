package otc

import (
	"testing"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/otctest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExchangeScenario(t *testing.T) {
	Convey("Given alice escrows 100 ujuno for 50 uusdc", t, func() {
		env := newTestEnv()
		alice := otctest.NewAddress(t)
		bob := otctest.NewAddress(t)

		res, err := env.deliver(t, alice, &DepositMsg{Exchange: asset.NewNative(50, "uusdc")}, asset.NewCoin(100, "ujuno"))
		So(err, ShouldBeNil)
		id, err := DecodeID(res.Data)
		So(err, ShouldBeNil)
		So(id, ShouldEqual, uint64(0))

		Convey("bob accepting with 50 uusdc settles both sides", func() {
			res, err := env.deliver(t, bob, &AcceptExchangeMsg{DepositID: 0}, asset.NewCoin(50, "uusdc"))
			So(err, ShouldBeNil)
			So(res.Instructions, ShouldResemble, []otc.Instruction{
				&BankSend{To: alice, Coins: asset.Coins{asset.NewCoin(50, "uusdc")}},
				&BankSend{To: bob, Coins: asset.Coins{asset.NewCoin(100, "ujuno")}},
			})

			for key, want := range map[string]string{
				"exchange":         "completed",
				"deposit-sender":   alice.String(),
				"original-deposit": "100 native:ujuno",
				"expected":         "50 native:uusdc",
				"accepted-by":      bob.String(),
			} {
				got, ok := res.Tag(key)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, want)
			}

			Convey("and the deposit is gone", func() {
				_, err := DepositByID(env.db, 0)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})
		})

		Convey("bob accepting with 40 uusdc fails", func() {
			_, err := env.deliver(t, bob, &AcceptExchangeMsg{DepositID: 0}, asset.NewCoin(40, "uusdc"))
			So(errors.ErrIncorrectAmount.Is(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "expected 50, provided 40")

			Convey("and the deposit is still there", func() {
				e, err := DepositByID(env.db, 0)
				So(err, ShouldBeNil)
				So(e.Owner, ShouldEqual, alice)
			})
		})
	})
}
