package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"

	"go.uber.org/zap"
)

// 外部のGST照会
type GSTVerifier interface {
	Verify(ctx context.Context, gstin string) (model.GSTDetails, error)
}

// 照会結果のキャッシュ
type GSTCache interface {
	Get(ctx context.Context, gstin string) (model.GSTDetails, bool, error)
	Set(ctx context.Context, gstin string, d model.GSTDetails) error
}

type GSTUsecase struct {
	verifier GSTVerifier
	cache    GSTCache
	log      *zap.Logger
}

func NewGSTUsecase(verifier GSTVerifier, cache GSTCache, log *zap.Logger) *GSTUsecase {
	return &GSTUsecase{verifier: verifier, cache: cache, log: log}
}

func (u *GSTUsecase) Verify(ctx context.Context, gstNumber string) (model.GSTDetails, error) {
	if strings.TrimSpace(gstNumber) == "" {
		return model.GSTDetails{}, badRequest("GST number is required")
	}

	clean := model.CleanGSTNumber(gstNumber)
	if len(clean) != model.GSTNumberLength {
		return model.GSTDetails{}, badRequest("GST number must be 15 characters")
	}

	// キャッシュが落ちていても照会は続ける
	if d, ok, err := u.cache.Get(ctx, clean); err != nil {
		u.log.Warn("gst cache get failed", zap.String("gstin", clean), zap.Error(err))
	} else if ok {
		return d, nil
	}

	d, err := u.verifier.Verify(ctx, clean)
	if err != nil {
		var ve *model.GSTVerifyError
		if errors.As(err, &ve) {
			return model.GSTDetails{}, withCause(http.StatusNotFound, ve.Message, ErrNotFound)
		}
		return model.GSTDetails{}, &HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify GST number",
			Err:     errors.Join(ErrInternal, err),
		}
	}

	if err := u.cache.Set(ctx, clean, d); err != nil {
		u.log.Warn("gst cache set failed", zap.String("gstin", clean), zap.Error(err))
	}
	return d, nil
}
