// Package hostapi implements the quest, wallet and claim capabilities of the
// host against its HTTP backend.
package hostapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/api"
	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

// Signer signs the messages the backend asks the user to sign.
type Signer interface {
	ConnectedAddress() (string, bool)
	SignMessage(ctx context.Context, message string) (string, error)
}

type Client struct {
	api    api.Generator
	signer Signer
}

func New(generator api.Generator, signer Signer) *Client {
	return &Client{api: generator, signer: signer}
}

// NewWithEndpoints returns a client calling the endpoints with the access
// token as bearer.
func NewWithEndpoints(endpoints []string, accessToken string, signer Signer) *Client {
	return New(api.NewGenerator(endpoints,
		api.OAuth2("Bearer", accessToken),
		api.UserAgent("questkit"),
	), signer)
}

func (c *Client) GetQuests(ctx context.Context, projectID string) ([]entity.Quest, error) {
	resp, err := check(c.api.New("/quests").Query(api.Parameter{"project_id": projectID}).GET(ctx))
	if err != nil {
		return nil, err
	}

	return decode[[]entity.Quest](resp)
}

func (c *Client) GetQuest(ctx context.Context, questID int64) (*entity.Quest, error) {
	resp, err := check(c.api.New("/quests/%d", questID).GET(ctx))
	if err != nil {
		return nil, err
	}

	quest, err := decode[entity.Quest](resp)
	if err != nil {
		return nil, err
	}

	return &quest, nil
}

func (c *Client) GetUserPlayStreak(ctx context.Context, questID int64) (*entity.UserPlayStreak, error) {
	resp, err := check(c.api.New("/quests/%d/playstreak", questID).GET(ctx))
	if err != nil {
		return nil, err
	}

	streak, err := decode[entity.UserPlayStreak](resp)
	if err != nil {
		return nil, err
	}

	return &streak, nil
}

func (c *Client) GetExternalEligibility(ctx context.Context, questID int64) (*entity.ExternalEligibility, error) {
	resp, err := check(c.api.New("/quests/%d/eligibility", questID).GET(ctx))
	if err != nil {
		if errorx.Is(err, errorx.NotFound) {
			return nil, nil
		}
		return nil, err
	}

	if resp.Code == http.StatusNoContent || len(resp.RawBody) == 0 {
		return nil, nil
	}

	eligibility, err := decode[entity.ExternalEligibility](resp)
	if err != nil {
		return nil, err
	}

	return &eligibility, nil
}

func (c *Client) GetDepositContracts(ctx context.Context, questID int64) ([]entity.DepositContract, error) {
	resp, err := check(c.api.New("/quests/%d/deposit-contracts", questID).GET(ctx))
	if err != nil {
		return nil, err
	}

	return decode[[]entity.DepositContract](resp)
}

func (c *Client) GetPendingExternalSync(ctx context.Context, questID int64) (bool, error) {
	resp, err := check(c.api.New("/quests/%d/pending-external-sync", questID).GET(ctx))
	if err != nil {
		return false, err
	}

	return decodeRaw[bool](resp)
}

func (c *Client) SyncPlayStreakWithExternalSource(ctx context.Context, questID int64) error {
	_, err := check(c.api.New("/quests/%d/sync-external", questID).POST(ctx))
	return err
}

func (c *Client) GetExternalTaskCredits(ctx context.Context, rewardID int64) (string, error) {
	resp, err := check(c.api.New("/rewards/%d/external-task-credits", rewardID).GET(ctx))
	if err != nil {
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errorx.New(errorx.BadResponse, "Invalid external task credits response")
	}

	credits, err := body.Get("credits")
	if err != nil {
		return "", errorx.New(errorx.BadResponse, "Invalid external task credits response: %v", err)
	}

	switch t := credits.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}

	return "", errorx.New(errorx.BadResponse, "Invalid type of credits (%T)", credits)
}

func (c *Client) GetActiveWallet(ctx context.Context) (string, error) {
	resp, err := check(c.api.New("/wallets/active").GET(ctx))
	if err != nil {
		if errorx.Is(err, errorx.NotFound) {
			return "", nil
		}
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", nil
	}

	return body.GetString("wallet_address")
}

func (c *Client) GetGameplayWallets(ctx context.Context) ([]entity.GameplayWallet, error) {
	resp, err := check(c.api.New("/wallets").GET(ctx))
	if err != nil {
		return nil, err
	}

	return decode[[]entity.GameplayWallet](resp)
}

func (c *Client) UpdateActiveWallet(ctx context.Context, walletID int64) error {
	_, err := check(c.api.New("/wallets/active").Body(api.JSON{"wallet_id": walletID}).PUT(ctx))
	return err
}

// SetActiveWallet links a new wallet to the account. A rejection of the
// backend is returned as an unsuccessful result, not as an error.
func (c *Client) SetActiveWallet(
	ctx context.Context, sig entity.WalletSignature,
) (*entity.SetActiveWalletResult, error) {
	resp, err := c.api.New("/wallets").
		Body(api.JSON{"message": sig.Message, "signature": sig.Signature}).
		POST(ctx)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return &entity.SetActiveWalletResult{
			Success: false,
			Status:  resp.Code,
			Message: statusError(resp).Error(),
		}, nil
	}

	return &entity.SetActiveWalletResult{Success: true, Status: resp.Code}, nil
}

// GetActiveWalletSignature asks the backend for the message proving the
// ownership of the connected wallet and signs it.
func (c *Client) GetActiveWalletSignature(ctx context.Context) (*entity.WalletSignature, error) {
	if c.signer == nil {
		return nil, errorx.New(errorx.Unavailable, "No wallet to sign the message")
	}

	address, ok := c.signer.ConnectedAddress()
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "No connected wallet")
	}

	resp, err := check(c.api.New("/wallets/message").
		Query(api.Parameter{"wallet_address": address}).
		GET(ctx))
	if err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "Invalid wallet message response")
	}

	message, err := body.GetString("message")
	if err != nil || message == "" {
		return nil, errorx.New(errorx.BadResponse, "Invalid wallet message response")
	}

	signature, err := c.signer.SignMessage(ctx, message)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot sign wallet message: %v", err)
		return nil, err
	}

	return &entity.WalletSignature{Message: message, Signature: signature}, nil
}

func (c *Client) GetQuestRewardSignature(
	ctx context.Context, address string, rewardID int64, tokenID *int64,
) (*entity.RewardClaimSignature, error) {
	params := api.Parameter{"address": address}
	if tokenID != nil {
		params["token_id"] = strconv.FormatInt(*tokenID, 10)
	}

	resp, err := check(c.api.New("/rewards/%d/signature", rewardID).Query(params).GET(ctx))
	if err != nil {
		return nil, err
	}

	sig, err := decode[entity.RewardClaimSignature](resp)
	if err != nil {
		return nil, err
	}

	return &sig, nil
}

func (c *Client) ConfirmRewardClaim(ctx context.Context, params entity.ConfirmClaimParams) error {
	_, err := check(c.api.New("/rewards/confirm").
		Body(api.JSON{"signature": params.Signature, "transactionHash": params.TransactionHash}).
		POST(ctx))
	return err
}

func (c *Client) ClaimPoints(ctx context.Context, reward entity.Reward) error {
	_, err := check(c.api.New("/rewards/%d/points", reward.ID).POST(ctx))
	return err
}

func (c *Client) CompleteExternalTask(ctx context.Context, reward entity.Reward) error {
	_, err := check(c.api.New("/rewards/%d/external-task", reward.ID).POST(ctx))
	return err
}

func (c *Client) CheckG7ConnectionStatus(ctx context.Context) (bool, error) {
	resp, err := check(c.api.New("/accounts/g7").GET(ctx))
	if err != nil {
		return false, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errorx.New(errorx.BadResponse, "Invalid account response")
	}

	return body.GetBool("connected")
}

func (c *Client) SyncPlaySession(ctx context.Context, projectID, runner string) error {
	_, err := check(c.api.New("/projects/%s/play-sessions", projectID).
		Body(api.JSON{"runner": runner}).
		POST(ctx))
	return err
}
