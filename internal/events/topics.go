package events

// Topic constants for domain events emitted by the storefront.
const (
	TopicOrderPlaced     = "order.placed"
	TopicContactReceived = "contact.received"
	TopicQuoteShared     = "pricelist.quote_shared"
)

// DefaultTopics returns the canonical list of topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderPlaced,
		TopicContactReceived,
		TopicQuoteShared,
	}
}
