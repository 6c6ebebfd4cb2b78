package entity

type GameplayWallet struct {
	ID            int64  `mapstructure:"id" json:"id"`
	WalletAddress string `mapstructure:"wallet_address" json:"wallet_address"`
}

type WalletSignature struct {
	Message   string `mapstructure:"message" json:"message"`
	Signature string `mapstructure:"signature" json:"signature"`
}

type SetActiveWalletResult struct {
	Success bool   `mapstructure:"success" json:"success"`
	Status  int    `mapstructure:"status" json:"status"`
	Message string `mapstructure:"message" json:"message"`
}

type RewardClaimSignature struct {
	Signature  string  `mapstructure:"signature" json:"signature"`
	Nonce      string  `mapstructure:"nonce" json:"nonce"`
	Expiration int64   `mapstructure:"expiration" json:"expiration"`
	TokenIDs   []int64 `mapstructure:"tokenIds" json:"tokenIds"`
}

type ConfirmClaimParams struct {
	Signature       string `json:"signature"`
	TransactionHash string `json:"transactionHash"`
}

type DepositContract struct {
	ChainID         int64  `mapstructure:"chain_id" json:"chain_id"`
	ContractAddress string `mapstructure:"contract_address" json:"contract_address"`
}
