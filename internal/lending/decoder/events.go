package decoder

import "github.com/goran-ethernal/LendingIndexor/internal/lending"

// Builders are keyed by the event name in the embedded ABIs. Arguments are
// read in declaration order.

var poolTokenEvents = map[string]build{
	"Mint": func(m lending.Meta, a args) lending.Event {
		return &lending.Mint{Meta: m, Minter: a.address(0), MintAmount: a.uint(1), MintTokens: a.uint(2)}
	},
	"Redeem": func(m lending.Meta, a args) lending.Event {
		return &lending.Redeem{Meta: m, Redeemer: a.address(0), RedeemAmount: a.uint(1), RedeemTokens: a.uint(2)}
	},
	"Borrow": func(m lending.Meta, a args) lending.Event {
		return &lending.Borrow{
			Meta:           m,
			Borrower:       a.address(0),
			BorrowAmount:   a.uint(1),
			AccountBorrows: a.uint(2),
			TotalBorrows:   a.uint(3),
		}
	},
	"RepayBorrow": func(m lending.Meta, a args) lending.Event {
		return &lending.RepayBorrow{
			Meta:           m,
			Payer:          a.address(0),
			Borrower:       a.address(1),
			RepayAmount:    a.uint(2),
			AccountBorrows: a.uint(3),
			TotalBorrows:   a.uint(4),
		}
	},
	"LiquidateBorrow": func(m lending.Meta, a args) lending.Event {
		return &lending.LiquidateBorrow{
			Meta:                m,
			Liquidator:          a.address(0),
			Borrower:            a.address(1),
			RepayAmount:         a.uint(2),
			PoolTokenCollateral: a.address(3),
			SeizeTokens:         a.uint(4),
		}
	},
	"Transfer": func(m lending.Meta, a args) lending.Event {
		return &lending.Transfer{Meta: m, From: a.address(0), To: a.address(1), Amount: a.uint(2)}
	},
	"AccrueInterest": func(m lending.Meta, a args) lending.Event {
		return &lending.AccrueInterest{
			Meta: m, InterestAccumulated: a.uint(0), BorrowIndex: a.uint(1), TotalBorrows: a.uint(2),
		}
	},
	// layout with cashPrior first
	"AccrueInterest0": func(m lending.Meta, a args) lending.Event {
		return &lending.AccrueInterest{
			Meta: m, InterestAccumulated: a.uint(1), BorrowIndex: a.uint(2), TotalBorrows: a.uint(3),
		}
	},
	"NewReserveFactor": func(m lending.Meta, a args) lending.Event {
		return &lending.NewReserveFactor{
			Meta: m, OldReserveFactorMantissa: a.uint(0), NewReserveFactorMantissa: a.uint(1),
		}
	},
	"NewMarketInterestRateModel": func(m lending.Meta, a args) lending.Event {
		return &lending.NewInterestRateModel{
			Meta: m, OldInterestRateModel: a.address(0), NewInterestRateModel: a.address(1),
		}
	},
}

var comptrollerEvents = map[string]build{
	"MarketListed": func(m lending.Meta, a args) lending.Event {
		return &lending.MarketListed{Meta: m, PoolToken: a.address(0)}
	},
	"MarketEntered": func(m lending.Meta, a args) lending.Event {
		return &lending.MarketEntered{Meta: m, PoolToken: a.address(0), Account: a.address(1)}
	},
	"MarketExited": func(m lending.Meta, a args) lending.Event {
		return &lending.MarketExited{Meta: m, PoolToken: a.address(0), Account: a.address(1)}
	},
	"NewCloseFactor": func(m lending.Meta, a args) lending.Event {
		return &lending.NewCloseFactor{Meta: m, OldCloseFactorMantissa: a.uint(0), NewCloseFactorMantissa: a.uint(1)}
	},
	"NewCollateralFactor": func(m lending.Meta, a args) lending.Event {
		return &lending.NewCollateralFactor{
			Meta:                        m,
			PoolToken:                   a.address(0),
			OldCollateralFactorMantissa: a.uint(1),
			NewCollateralFactorMantissa: a.uint(2),
		}
	},
	"NewLiquidationIncentive": func(m lending.Meta, a args) lending.Event {
		return &lending.NewLiquidationIncentive{
			Meta: m, OldLiquidationIncentiveMantissa: a.uint(0), NewLiquidationIncentiveMantissa: a.uint(1),
		}
	},
	"NewMaxAssets": func(m lending.Meta, a args) lending.Event {
		return &lending.NewMaxAssets{Meta: m, OldMaxAssets: a.uint(0), NewMaxAssets: a.uint(1)}
	},
	"NewPriceOracle": func(m lending.Meta, a args) lending.Event {
		return &lending.NewPriceOracle{Meta: m, OldPriceOracle: a.address(0), NewPriceOracle: a.address(1)}
	},
	"NewCompRate": func(m lending.Meta, a args) lending.Event {
		return &lending.NewIncentiveRate{Meta: m, OldRate: a.uint(0), NewRate: a.uint(1)}
	},
	"CompSpeedUpdated": func(m lending.Meta, a args) lending.Event {
		return &lending.IncentiveSpeedUpdated{Meta: m, PoolToken: a.address(0), NewSpeed: a.uint(1)}
	},
	"DistributedSupplierComp": func(m lending.Meta, a args) lending.Event {
		return &lending.DistributedSupplierIncentive{
			Meta: m, PoolToken: a.address(0), Supplier: a.address(1), Delta: a.uint(2), SupplyIndex: a.uint(3),
		}
	},
	"DistributedBorrowerComp": func(m lending.Meta, a args) lending.Event {
		return &lending.DistributedBorrowerIncentive{
			Meta: m, PoolToken: a.address(0), Borrower: a.address(1), Delta: a.uint(2), BorrowIndex: a.uint(3),
		}
	},
}

var oracleEvents = map[string]build{
	"PricePosted": func(m lending.Meta, a args) lending.Event {
		return &lending.PricePosted{
			Meta:                   m,
			Asset:                  a.address(0),
			PreviousPriceMantissa:  a.uint(1),
			RequestedPriceMantissa: a.uint(2),
			NewPriceMantissa:       a.uint(3),
		}
	},
}

var underlyingEvents = map[string]build{
	"Approval": func(m lending.Meta, a args) lending.Event {
		return &lending.Approval{Meta: m, Owner: a.address(0), Spender: a.address(1), Value: a.uint(2)}
	},
}
