package booking

import (
	"errors"
	"strconv"

	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/pricing"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

func idNumber(id uint) pricing.Scalar {
	return pricing.Scalar(strconv.FormatUint(uint64(id), 10))
}

func jsonNumber(s string) pricing.Scalar {
	return pricing.Scalar(s)
}

func asError(err error, target **httperr.Error) bool {
	return errors.As(err, target)
}
