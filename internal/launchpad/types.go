package launchpad

import "fmt"

// MigrationDex is the backend's name for the DEX a token migrates to.
type MigrationDex string

const (
	MigrationDexUniswap   MigrationDex = "UNISWAP"
	MigrationDexAerodrome MigrationDex = "AERODROME"
)

type CreateMintRequest struct {
	Name         string       `json:"name"`
	Symbol       string       `json:"symbol"`
	MigrationDex MigrationDex `json:"migrationDex"`
	Icon         string       `json:"icon"`
	Description  string       `json:"description,omitempty"`
	Banner       string       `json:"banner,omitempty"`
	Links        []Link       `json:"links,omitempty"`
}

type Link struct {
	Url   string `json:"url"`
	Label string `json:"label"`
}

type CreateMintResponse struct {
	PairId string `json:"pairId"`
}

type PrepareMintRequest struct {
	CreateMintRequest
	Amount    string `json:"-"`
	CreatorPK string `json:"-"`
}

type mintTxPrepareBody struct {
	Amount    string `json:"amount,omitempty"`
	CreatorPK string `json:"creatorPK"`
}

// MintTxPrepareResponse is an unsigned transaction plus the short-lived token
// that authorizes its submission.
type MintTxPrepareResponse struct {
	Token       string `json:"token"`
	Transaction string `json:"transaction"`
	PairId      string `json:"-"`
}

type MintTxSubmitRequest struct {
	Token             string `json:"token"`
	SignedTransaction string `json:"signedTransaction"`
}

type TxStatus string

const (
	TxStatusSuccess TxStatus = "SUCCESS"
	TxStatusPending TxStatus = "PENDING"
	TxStatusFailed  TxStatus = "FAILED"
)

type MintTxSubmitResponse struct {
	TransactionSignature string   `json:"transactionSignature"`
	Status               TxStatus `json:"status"`
}

// ErrorResponse is the error body the backend sends with non-2xx statuses.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Reason     string `json:"error"`
}

func (e *ErrorResponse) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("launchpad api error %d %s: %v", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("launchpad api error %d: %v", e.StatusCode, e.Message)
}
