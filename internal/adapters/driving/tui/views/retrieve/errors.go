package retrieve

import "errors"

// ErrNoRetrievalService indicates the retrieval service is not configured.
var ErrNoRetrievalService = errors.New("retrieval service not available")
