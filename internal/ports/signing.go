package ports

// SigningRegistryPort is the external registry of signing-config names a
// build type may refer to.
type SigningRegistryPort interface {
	Names() []string
}
