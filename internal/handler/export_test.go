package handler

// Export for testing
type ValidateResponse = validateResponse
type FolderResponse = folderResponse
type SubscriptionResponse = subscriptionResponse
type SubscriptionListResponse = subscriptionListResponse
type RefreshStartedResponse = refreshStartedResponse

var WriteServiceError = writeServiceError
var Error = writeError
