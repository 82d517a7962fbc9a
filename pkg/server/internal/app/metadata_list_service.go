package app

import (
	"github.com/bsv-blockchain/go-sdk/overlay"
)

// TopicManagersListProvider defines the interface for retrieving
// a list of topic managers from the overlay engine.
type TopicManagersListProvider interface {
	ListTopicManagers() map[string]*overlay.MetaData
}

// LookupListProvider defines the interface for retrieving
// a list of lookup service providers from the overlay engine.
type LookupListProvider interface {
	ListLookupServiceProviders() map[string]*overlay.MetaData
}

// Metadata represents the descriptive information of a topic manager or lookup service.
type Metadata struct {
	Name             string
	ShortDescription string
	IconURL          string
	Version          string
	InformationURL   string
}

// MetadataList maps a registered name to its metadata.
type MetadataList map[string]Metadata

const noDescription = "No description available"

// NewMetadataList formats engine metadata into a response-friendly list.
// Missing metadata or descriptions are replaced with a placeholder.
func NewMetadataList(src map[string]*overlay.MetaData) MetadataList {
	result := make(MetadataList, len(src))
	for name, metadata := range src {
		item := Metadata{
			Name:             name,
			ShortDescription: noDescription,
		}
		if metadata != nil {
			if metadata.Description != "" {
				item.ShortDescription = metadata.Description
			}
			item.IconURL = metadata.Icon
			item.Version = metadata.Version
			item.InformationURL = metadata.InfoUrl
		}
		result[name] = item
	}
	return result
}

// TopicManagersListService provides operations for retrieving and formatting
// topic manager metadata from the overlay engine.
type TopicManagersListService struct {
	provider TopicManagersListProvider
}

// ListTopicManagers retrieves the list of topic managers.
func (s *TopicManagersListService) ListTopicManagers() MetadataList {
	return NewMetadataList(s.provider.ListTopicManagers())
}

// NewTopicManagersListService creates a new TopicManagersListService. It panics if the provider is nil.
func NewTopicManagersListService(provider TopicManagersListProvider) *TopicManagersListService {
	if provider == nil {
		panic("topic manager list provider is nil")
	}
	return &TopicManagersListService{provider: provider}
}

// LookupListService provides operations for retrieving and formatting
// lookup service metadata from the overlay engine.
type LookupListService struct {
	provider LookupListProvider
}

// ListLookupServiceProviders retrieves the list of lookup service providers.
func (s *LookupListService) ListLookupServiceProviders() MetadataList {
	return NewMetadataList(s.provider.ListLookupServiceProviders())
}

// NewLookupListService creates a new LookupListService. It panics if the provider is nil.
func NewLookupListService(provider LookupListProvider) *LookupListService {
	if provider == nil {
		panic("lookup list provider is nil")
	}
	return &LookupListService{provider: provider}
}
