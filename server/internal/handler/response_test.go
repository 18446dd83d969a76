package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"iResearch/server/internal/apperr"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindUnauthenticated, http.StatusUnauthorized},
		{apperr.KindForbidden, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindStore, http.StatusInternalServerError},
		{apperr.KindDuplicateKey, http.StatusBadRequest},
		{apperr.KindValidation, http.StatusBadRequest},
		{apperr.KindEmptySelection, http.StatusBadRequest},
		{apperr.KindUnsupportedOp, http.StatusBadRequest},
		{apperr.KindHasDependents, http.StatusBadRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.kind))
	}
}
