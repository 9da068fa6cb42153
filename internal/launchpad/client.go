package launchpad

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fachebot/moonit-sdk/internal/logger"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/carlmjohnson/requests"
)

// BasePath returns the API root for a backend host such as "mintlp.io".
func BasePath(env network.Environment, host string) string {
	if env == network.Mainnet {
		return fmt.Sprintf("https://api.%s/v1", host)
	}
	return fmt.Sprintf("https://api.dev.%s/v1", host)
}

// Client talks to the launchpad backend that records mints and templates
// their transactions. It keeps no state between calls.
type Client struct {
	baseURL    string
	network    network.Network
	httpClient *http.Client
}

func NewClient(baseURL string, n network.Network, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = new(http.Client)
	}

	return &Client{
		baseURL:    baseURL,
		network:    n,
		httpClient: httpClient,
	}
}

func (client *Client) BaseURL() string {
	return client.baseURL
}

// CreateMint uploads the token metadata and returns the allocated pair id.
func (client *Client) CreateMint(ctx context.Context, req CreateMintRequest) (*CreateMintResponse, error) {
	if !network.Supported(client.network) {
		return nil, &network.UnsupportedNetworkError{Network: client.network}
	}

	var response CreateMintResponse
	err := client.post(ctx, "", &response, req, "create", client.network.String(), "metadata", "sdk")
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Launchpad] 创建mint记录, network: %s, symbol: %s, pairId: %s", client.network, req.Symbol, response.PairId)
	return &response, nil
}

// PrepareMint creates the mint record and then requests a ready-to-sign
// transaction for it. The second request is only sent if the first succeeds.
func (client *Client) PrepareMint(ctx context.Context, req PrepareMintRequest) (*MintTxPrepareResponse, error) {
	created, err := client.CreateMint(ctx, req.CreateMintRequest)
	if err != nil {
		return nil, err
	}

	body := mintTxPrepareBody{
		Amount:    req.Amount,
		CreatorPK: req.CreatorPK,
	}

	var response MintTxPrepareResponse
	err = client.post(ctx, "", &response, body, client.network.String(), created.PairId, "sdk")
	if err != nil {
		return nil, err
	}
	response.PairId = created.PairId

	logger.Debugf("[Launchpad] 准备mint交易, network: %s, pairId: %s, creator: %s", client.network, created.PairId, req.CreatorPK)
	return &response, nil
}

// SubmitMint relays a creator-signed mint transaction. The validity token from
// PrepareMint authorizes the request.
func (client *Client) SubmitMint(ctx context.Context, req MintTxSubmitRequest) (*MintTxSubmitResponse, error) {
	var response MintTxSubmitResponse
	err := client.post(ctx, req.Token, &response, req, client.network.String(), "sdk")
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Launchpad] 提交mint交易, network: %s, tx: %s, status: %s", client.network, response.TransactionSignature, response.Status)
	return &response, nil
}

func (client *Client) post(ctx context.Context, bearer string, out any, body any, segments ...string) error {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	var errRes *ErrorResponse
	builder := requests.URL(strings.TrimRight(client.baseURL, "/") + "/" + strings.Join(escaped, "/")).
		Method(http.MethodPost).
		Client(client.httpClient).
		BodyJSON(body).
		ErrorJSON(&errRes).
		ToJSON(out)
	if bearer != "" {
		builder = builder.Bearer(bearer)
	}

	err := builder.Fetch(ctx)
	if err != nil {
		if errRes == nil {
			return err
		}

		var resErr *requests.ResponseError
		if errRes.StatusCode == 0 && errors.As(err, &resErr) {
			errRes.StatusCode = resErr.StatusCode
		}
		return errRes
	}
	return nil
}
