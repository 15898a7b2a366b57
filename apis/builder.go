/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "go.uber.org/zap"

// Builder composes Types, Resolver and Registry from a Config.
// Implementations may migrate state from previous instances (prev), or ignore them.
type Builder interface {
	// BuildTypes constructs a Types table for Config. May migrate entries from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildTypes(cfg Config, prev Types, ext any) Types
	// BuildResolver constructs a Resolver for Config and Types. May reuse state from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildResolver(cfg Config, types Types, prev Resolver, ext any) Resolver
	// BuildRegistry constructs a Registry dispatching through res and logging
	// through log. May migrate mappers from prev. ext is an optional extension context.
	BuildRegistry(cfg Config, res Resolver, log *zap.Logger, prev Registry, ext any) Registry
}
