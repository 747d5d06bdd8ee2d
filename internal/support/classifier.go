package support

import "strings"

// Canned replies for the automated responder.
const (
	ReplyShipping = "Shipping typically takes 3-5 business days within the US."
	ReplyReturn   = "We offer a 30-day return policy for all products."
	ReplyWarranty = "All our smartwatches come with a 1-year limited warranty."
	ReplyDefault  = "Thank you for your message. Our team will get back to you shortly."
)

type rule struct {
	keyword string
	reply   string
}

// Rules are checked in order; the first keyword hit wins.
var rules = []rule{
	{keyword: "shipping", reply: ReplyShipping},
	{keyword: "return", reply: ReplyReturn},
	{keyword: "warranty", reply: ReplyWarranty},
}

// Classify picks the automated reply for a customer message. It is a pure
// case-insensitive substring match; every input gets a reply.
func Classify(message string) string {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		if strings.Contains(lowered, r.keyword) {
			return r.reply
		}
	}
	return ReplyDefault
}
