package room

// PayloadIn is the format we expect from a connected client
type PayloadIn struct {
	// Action is what the client wants to do: "act" or "state"
	Action string `json:"action"`

	// Name is the betting action for "act" payloads: fold, check, call, or raise
	Name string `json:"name"`

	// Amount is the raise-to amount for raise actions
	Amount int `json:"amount"`

	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is a message sent to a connected client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
