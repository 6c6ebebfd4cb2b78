package common

// Tracking events sent to the host analytics sink.
const (
	EventUpdateActiveWalletStart   = "Update Active Wallet Start"
	EventUpdateActiveWalletSuccess = "Update Active Wallet Success"
	EventUpdateActiveWalletError   = "Update Active Wallet Error"

	EventAddGameplayWalletStart    = "Add Gameplay Wallet Start"
	EventAddGameplayWalletSuccess  = "Add Gameplay Wallet Success"
	EventAddGameplayWalletError    = "Add Gameplay Wallet Error"
	EventAddGameplayWalletRejected = "Add Gameplay Wallet Rejected"

	EventRewardClaimStarted = "Reward Claim Started"
	EventRewardClaimSuccess = "Reward Claim Success"
	EventRewardClaimError   = "Reward Claim Error"
	EventRewardClaimWarning = "Reward Claim Warning"
)
