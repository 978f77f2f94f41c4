package evm

// EntryFunctionName is the reserved name of the segment entry point.
const EntryFunctionName = "__entry"

// LibraryDeployAddressTag is the immutable identifier the source compiler
// reserves for the library deploy address. The linker patches it after
// deployment, so immutable stores to it are dropped silently.
const LibraryDeployAddressTag = "library_deploy_address"
