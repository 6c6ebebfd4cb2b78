package entity

import (
	"github.com/questx-lab/questkit/pkg/enum"
	"golang.org/x/exp/slices"
)

type RewardType string

var (
	RewardERC20         = enum.New(RewardType("ERC20"))
	RewardERC721        = enum.New(RewardType("ERC721"))
	RewardERC1155       = enum.New(RewardType("ERC1155"))
	RewardPoints        = enum.New(RewardType("POINTS"))
	RewardExternalTasks = enum.New(RewardType("EXTERNAL-TASKS"))
)

var onChainRewardTypes = []RewardType{RewardERC20, RewardERC721, RewardERC1155}

type Reward struct {
	ID              int64      `mapstructure:"id" json:"id" structs:"id"`
	Title           string     `mapstructure:"title" json:"title" structs:"title"`
	ImageURL        string     `mapstructure:"image_url" json:"image_url" structs:"image_url"`
	RewardType      RewardType `mapstructure:"reward_type" json:"reward_type" structs:"reward_type"`
	ChainID         *int64     `mapstructure:"chain_id" json:"chain_id" structs:"chain_id"`
	ContractAddress string     `mapstructure:"contract_address" json:"contract_address" structs:"contract_address"`
	AmountPerUser   string     `mapstructure:"amount_per_user" json:"amount_per_user" structs:"amount_per_user"`
	Decimals        int        `mapstructure:"decimals" json:"decimals" structs:"decimals"`
	TokenIDs        []int64    `mapstructure:"token_ids" json:"token_ids" structs:"token_ids"`
	MarketplaceURL  string     `mapstructure:"marketplace_url" json:"marketplace_url" structs:"marketplace_url"`
}

func (r *Reward) IsOnChain() bool {
	return slices.Contains(onChainRewardTypes, r.RewardType)
}

// SingleTokenID returns the token id of an ERC1155 reward which has exactly
// one token id.
func (r *Reward) SingleTokenID() (int64, bool) {
	if r.RewardType != RewardERC1155 || len(r.TokenIDs) != 1 {
		return 0, false
	}

	return r.TokenIDs[0], true
}
