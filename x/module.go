package x

import "github.com/tollgate-dao/tollgate"

// ModuleCondition returns the condition owning the funds of an extension.
// Nobody can sign for it, so only the extension code moves funds held by
// its address.
func ModuleCondition(name string) tollgate.Condition {
	return tollgate.NewCondition("module", "account", []byte(name))
}

// ModuleAddress returns the address of the account owned by an extension.
func ModuleAddress(name string) tollgate.Address {
	return ModuleCondition(name).Address()
}
