package aliexpress

import "fmt"

// RemoteCallError reports a non-2xx gateway response.
type RemoteCallError struct {
	Status int
	Body   string
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("aliexpress: call failed with status %d: %s", e.Status, e.Body)
}

// MalformedResponseError reports a 2xx response whose body could not be
// decoded. The gateway reports its own errors as non-JSON bodies with
// status 200, so the raw body is kept for diagnosis.
type MalformedResponseError struct {
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("aliexpress: malformed response: %v (body: %s)", e.Err, e.Body)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
