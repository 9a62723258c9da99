package recent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vortex-fintech/go-iban/data/recent"
	"github.com/vortex-fintech/go-iban/data/recent/mocks"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

func TestMockStoreSatisfiesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockStore(ctrl)

	var st recent.Store = m
	m.EXPECT().Add(gomock.Any(), "DE89370400440532013000").Return(nil)
	m.EXPECT().List(gomock.Any()).Return(nil, errors.New("down"))

	require.NoError(t, st.Add(context.Background(), "DE89370400440532013000"))
	_, err := st.List(context.Background())
	require.EqualError(t, err, "down")
}
