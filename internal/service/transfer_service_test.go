package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/internal/core/ports/mocks"
	"zap-feed-service/pkg/apperror"
)

type transferTestDeps struct {
	svc    *TransferServiceImpl
	client *mocks.MockLedgerClient
	cache  *mocks.MockFeedCache
	ctrl   *gomock.Controller
}

func setupTransferService(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		client: mocks.NewMockLedgerClient(ctrl),
		cache:  mocks.NewMockFeedCache(ctrl),
		ctrl:   ctrl,
	}
	d.svc = NewTransferService(d.client, d.cache, newTestClassifier(), testCacheName, zerolog.Nop())
	return d
}

func zapRequest() ports.SendZapRequest {
	return ports.SendZapRequest{
		SenderID:    "u-alice",
		RecipientID: "u-bob",
		AmountSat:   21,
		Memo:        "gg",
	}
}

func TestTransferService_SendZap_Success(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return([]domain.Wallet{
		{ID: "w-bob-private", Name: "Bob - Private", InKey: "bp-in", AdminKey: "bp-admin"},
	}, nil)
	d.client.EXPECT().WalletBalanceMsat(ctx, "ak-in").Return(int64(100000), nil)
	d.client.EXPECT().CreateInvoice(ctx, "bp-in", int64(21), "gg").Return("lnbc21...", nil)
	d.client.EXPECT().PayInvoice(ctx, gomock.Any(), "lnbc21...").Return("hash123", nil)
	d.cache.EXPECT().Invalidate(ctx, testCacheName).Return(nil)

	res, err := d.svc.SendZap(ctx, zapRequest())
	require.NoError(t, err)
	assert.Equal(t, "hash123", res.PaymentHash)
	assert.Equal(t, "lnbc21...", res.Bolt11)
}

func TestTransferService_SendZap_AnonymousMemoPrefix(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	req := zapRequest()
	req.Anonymous = true

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return(bobWallets(), nil)
	d.client.EXPECT().WalletBalanceMsat(ctx, "ak-in").Return(int64(100000), nil)
	d.client.EXPECT().CreateInvoice(ctx, "bp-in", int64(21), domain.AnonymousMemoPrefix+"gg").Return("lnbc21...", nil)
	d.client.EXPECT().PayInvoice(ctx, gomock.Any(), "lnbc21...").Return("hash123", nil)
	d.cache.EXPECT().Invalidate(ctx, testCacheName).Return(nil)

	_, err := d.svc.SendZap(ctx, req)
	require.NoError(t, err)
}

func TestTransferService_SendZap_InvalidAmount(t *testing.T) {
	d := setupTransferService(t)

	for _, amount := range []int64{0, -5} {
		req := zapRequest()
		req.AmountSat = amount
		_, err := d.svc.SendZap(context.Background(), req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "ZAP_001", appErr.Code)
	}
}

func TestTransferService_SendZap_SelfZap(t *testing.T) {
	d := setupTransferService(t)

	req := zapRequest()
	req.RecipientID = req.SenderID

	_, err := d.svc.SendZap(context.Background(), req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ZAP_005", appErr.Code)
}

func TestTransferService_SendZap_NoSourceWallet(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return([]domain.Wallet{
		{ID: "w1", Name: "Alice - Private", InKey: "k"},
	}, nil)

	_, err := d.svc.SendZap(ctx, zapRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ZAP_003", appErr.Code)
}

func TestTransferService_SendZap_NoDestinationWallet(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return([]domain.Wallet{
		{ID: "w1", Name: "Bob - Allowance", InKey: "k"},
	}, nil)

	_, err := d.svc.SendZap(ctx, zapRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ZAP_004", appErr.Code)
}

func TestTransferService_SendZap_DeletedWalletIgnored(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return([]domain.Wallet{
		{ID: "w1", Name: "Alice - Allowance", InKey: "k", Deleted: true},
	}, nil)

	_, err := d.svc.SendZap(ctx, zapRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ZAP_003", appErr.Code)
}

func TestTransferService_SendZap_InsufficientBalance(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return(bobWallets(), nil)
	// 21 sat needs 21000 msat.
	d.client.EXPECT().WalletBalanceMsat(ctx, "ak-in").Return(int64(20999), nil)

	_, err := d.svc.SendZap(ctx, zapRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ZAP_002", appErr.Code)
}

func TestTransferService_SendZap_PayFailure(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return(bobWallets(), nil)
	d.client.EXPECT().WalletBalanceMsat(ctx, "ak-in").Return(int64(100000), nil)
	d.client.EXPECT().CreateInvoice(ctx, "bp-in", int64(21), "gg").Return("lnbc21...", nil)
	d.client.EXPECT().PayInvoice(ctx, gomock.Any(), "lnbc21...").Return("", errors.New("route not found"))

	_, err := d.svc.SendZap(ctx, zapRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_001", appErr.Code)
}

func TestTransferService_SendZap_CacheInvalidationFailureIsNotFatal(t *testing.T) {
	d := setupTransferService(t)
	ctx := context.Background()

	d.client.EXPECT().ListUserWallets(ctx, "u-alice").Return(aliceWallets(), nil)
	d.client.EXPECT().ListUserWallets(ctx, "u-bob").Return(bobWallets(), nil)
	d.client.EXPECT().WalletBalanceMsat(ctx, "ak-in").Return(int64(100000), nil)
	d.client.EXPECT().CreateInvoice(ctx, "bp-in", int64(21), "gg").Return("lnbc21...", nil)
	d.client.EXPECT().PayInvoice(ctx, gomock.Any(), "lnbc21...").Return("hash123", nil)
	d.cache.EXPECT().Invalidate(ctx, testCacheName).Return(errors.New("redis down"))

	res, err := d.svc.SendZap(ctx, zapRequest())
	require.NoError(t, err)
	assert.Equal(t, "hash123", res.PaymentHash)
}
