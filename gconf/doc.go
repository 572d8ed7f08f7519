/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity, stored under the "_c:"
prefix followed by the extension name. A configuration is validated before
every write. Configurations are loaded from the "conf" section of the genesis
file and updated through a message carrying a patch, signed by the
configuration owner.

Zero value fields of a patch are ignored. A message may declare a "Clear"
list of field names that are reset to their zero value before the patch is
applied.
*/
package gconf
